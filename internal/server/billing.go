package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listFacturasCarWash(c *gin.Context) {
	facturas, err := s.carwash.ListInvoices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, facturas)
}

func (s *Server) createFacturaCarWash(c *gin.Context) {
	var body struct {
		CedulaCliente int    `json:"Cedula_Cliente" binding:"required"`
		PlacaVehiculo string `json:"Placa_Vehiculo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	factura, err := s.carwash.Invoice(c.Request.Context(), body.CedulaCliente, body.PlacaVehiculo)
	if err != nil {
		fail(c, err)
		return
	}
	invoicesIssued.WithLabelValues("car_wash").Inc()
	c.JSON(http.StatusCreated, factura)
}

func (s *Server) listTickets(c *gin.Context) {
	tickets, err := s.parking.ListTickets(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (s *Server) createTicket(c *gin.Context) {
	var body struct {
		Placa string `json:"Placa"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	ticket, err := s.parking.OpenTicket(c.Request.Context(), body.Placa)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (s *Server) listFacturasParking(c *gin.Context) {
	facturas, err := s.parking.ListInvoices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, facturas)
}

func (s *Server) createFacturaParking(c *gin.Context) {
	var body struct {
		TicketID int `json:"Ticket_id" binding:"required"`
		TarifaID int `json:"Tarifas_Parking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	factura, err := s.parking.Invoice(c.Request.Context(), body.TicketID, body.TarifaID)
	if err != nil {
		fail(c, err)
		return
	}
	invoicesIssued.WithLabelValues("parking").Inc()
	c.JSON(http.StatusCreated, factura)
}
