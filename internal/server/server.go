// Package server exposes the REST API over the repositories and billing
// engines. It owns request parsing and the mapping of domain errors to HTTP
// status codes; all business rules live below it.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrcarwash/backend/internal/billing"
	"github.com/mrcarwash/backend/internal/models"
	"github.com/mrcarwash/backend/internal/repository"
	"github.com/mrcarwash/backend/internal/storage"
)

// Server wires the HTTP routes to the domain layer.
type Server struct {
	clients     *repository.Repository[models.Cliente, int]
	vehicles    *repository.Repository[models.Vehiculo, string]
	tariffs     *repository.Repository[models.TarifaParking, int]
	services    *repository.Repository[models.ServicioCarWash, int]
	assignments *repository.Assignments
	carwash     *billing.CarWash
	parking     *billing.Parking
}

// New creates a Server over the given store.
func New(store storage.Store) *Server {
	return &Server{
		clients:     repository.NewClients(store),
		vehicles:    repository.NewVehicles(store),
		tariffs:     repository.NewTariffs(store),
		services:    repository.NewServices(store),
		assignments: repository.NewAssignments(store),
		carwash:     billing.NewCarWash(store),
		parking:     billing.NewParking(store),
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(), cors(), observeRequests())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API de Mr CarWash & Parking")
	})
	r.GET("/metrics", metricsHandler())

	api := r.Group("/api")
	{
		api.GET("/clientes", s.listClientes)
		api.POST("/clientes", s.createCliente)
		api.GET("/clientes/:cedula", s.getCliente)
		api.PUT("/clientes/:cedula", s.updateCliente)
		api.DELETE("/clientes/:cedula", s.deleteCliente)

		api.GET("/vehiculos", s.listVehiculos)
		api.POST("/vehiculos", s.createVehiculo)
		api.GET("/vehiculos/:placa", s.getVehiculo)
		api.PUT("/vehiculos/:placa", s.updateVehiculo)
		api.DELETE("/vehiculos/:placa", s.deleteVehiculo)
		api.GET("/vehiculos/:placa/servicios", s.listVehiculoServicios)
		api.POST("/vehiculos/:placa/servicios", s.assignServicio)

		api.GET("/tarifas_parking", s.listTarifas)
		api.POST("/tarifas_parking", s.createTarifa)
		api.GET("/tarifas_parking/:id", s.getTarifa)
		api.PUT("/tarifas_parking/:id", s.updateTarifa)
		api.DELETE("/tarifas_parking/:id", s.deleteTarifa)

		api.GET("/servicios_car_wash", s.listServicios)
		api.POST("/servicios_car_wash", s.createServicio)
		api.GET("/servicios_car_wash/:id", s.getServicio)
		api.PUT("/servicios_car_wash/:id", s.updateServicio)
		api.DELETE("/servicios_car_wash/:id", s.deleteServicio)

		api.GET("/facturas_car_wash", s.listFacturasCarWash)
		api.POST("/facturas_car_wash", s.createFacturaCarWash)

		api.GET("/tickets_parking", s.listTickets)
		api.POST("/tickets_parking", s.createTicket)

		api.GET("/facturas_parking", s.listFacturasParking)
		api.POST("/facturas_parking", s.createFacturaParking)
	}

	return r
}

// fail translates a domain error into the HTTP response. The mapping is the
// boundary contract: not-found resolves to 404, caller mistakes (duplicate
// key, nothing to bill, closed ticket) to 400, a busy store to 503 and
// everything else, persistence failures included, to 500.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateKey),
		errors.Is(err, billing.ErrNothingToBill),
		errors.Is(err, billing.ErrTicketClosed):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrBusy):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

// badRequest reports a malformed request body or path parameter.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
