package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrcarwash/backend/internal/models"
)

func cedulaParam(c *gin.Context) (int, error) {
	cedula, err := strconv.Atoi(c.Param("cedula"))
	if err != nil {
		return 0, fmt.Errorf("cedula invalida: %s", c.Param("cedula"))
	}
	return cedula, nil
}

func idParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("id invalido: %s", c.Param("id"))
	}
	return id, nil
}

// ----- Clientes -----

func (s *Server) listClientes(c *gin.Context) {
	clientes, err := s.clients.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

func (s *Server) getCliente(c *gin.Context) {
	cedula, err := cedulaParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	cliente, err := s.clients.Get(c.Request.Context(), cedula)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func (s *Server) createCliente(c *gin.Context) {
	var cliente models.Cliente
	if err := c.ShouldBindJSON(&cliente); err != nil {
		badRequest(c, err)
		return
	}
	if cliente.Cedula <= 0 {
		badRequest(c, fmt.Errorf("cedula requerida"))
		return
	}
	created, err := s.clients.Create(c.Request.Context(), cliente)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateCliente(c *gin.Context) {
	cedula, err := cedulaParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	var patch models.ClientePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.clients.Update(c.Request.Context(), cedula, func(cl *models.Cliente) {
		patch.Apply(cl)
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCliente(c *gin.Context) {
	cedula, err := cedulaParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	deleted, err := s.clients.Delete(c.Request.Context(), cedula)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// ----- Vehiculos -----

func (s *Server) listVehiculos(c *gin.Context) {
	vehiculos, err := s.vehicles.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculos)
}

func (s *Server) getVehiculo(c *gin.Context) {
	vehiculo, err := s.vehicles.Get(c.Request.Context(), c.Param("placa"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vehiculo)
}

func (s *Server) createVehiculo(c *gin.Context) {
	var vehiculo models.Vehiculo
	if err := c.ShouldBindJSON(&vehiculo); err != nil {
		badRequest(c, err)
		return
	}
	if vehiculo.Placa == "" {
		badRequest(c, fmt.Errorf("placa requerida"))
		return
	}
	created, err := s.vehicles.Create(c.Request.Context(), vehiculo)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateVehiculo(c *gin.Context) {
	var patch models.VehiculoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.vehicles.Update(c.Request.Context(), c.Param("placa"), func(v *models.Vehiculo) {
		patch.Apply(v)
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteVehiculo(c *gin.Context) {
	deleted, err := s.vehicles.Delete(c.Request.Context(), c.Param("placa"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// ----- Servicios asignados a un vehiculo -----

func (s *Server) listVehiculoServicios(c *gin.Context) {
	asignados, err := s.assignments.ListByVehicle(c.Request.Context(), c.Param("placa"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, asignados)
}

func (s *Server) assignServicio(c *gin.Context) {
	var body struct {
		ServicioID int `json:"Servicio_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	created, err := s.assignments.Assign(c.Request.Context(), c.Param("placa"), body.ServicioID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ----- Tarifas de parking -----

func (s *Server) listTarifas(c *gin.Context) {
	tarifas, err := s.tariffs.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tarifas)
}

func (s *Server) getTarifa(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	tarifa, err := s.tariffs.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tarifa)
}

func (s *Server) createTarifa(c *gin.Context) {
	var tarifa models.TarifaParking
	if err := c.ShouldBindJSON(&tarifa); err != nil {
		badRequest(c, err)
		return
	}
	created, err := s.tariffs.Create(c.Request.Context(), tarifa)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTarifa(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	var patch models.TarifaPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.tariffs.Update(c.Request.Context(), id, func(t *models.TarifaParking) {
		patch.Apply(t)
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTarifa(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	deleted, err := s.tariffs.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// ----- Catalogo de servicios de car wash -----

func (s *Server) listServicios(c *gin.Context) {
	servicios, err := s.services.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, servicios)
}

func (s *Server) getServicio(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	servicio, err := s.services.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, servicio)
}

func (s *Server) createServicio(c *gin.Context) {
	var servicio models.ServicioCarWash
	if err := c.ShouldBindJSON(&servicio); err != nil {
		badRequest(c, err)
		return
	}
	created, err := s.services.Create(c.Request.Context(), servicio)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateServicio(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	var patch models.ServicioPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.services.Update(c.Request.Context(), id, func(sv *models.ServicioCarWash) {
		patch.Apply(sv)
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteServicio(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	deleted, err := s.services.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
