package storage

import "github.com/mrcarwash/backend/internal/models"

// Document is the single structured blob holding every collection. JSON keys
// match the original data file so existing stored data keeps working.
//
// Every collection must be present at all times; Normalize turns nil slices
// into empty ones so a missing collection reads as empty, never as an error,
// and always serializes as [].
type Document struct {
	Clientes          []models.Cliente          `json:"Clientes"`
	Vehiculos         []models.Vehiculo         `json:"Vehiculos"`
	TarifasParking    []models.TarifaParking    `json:"Tarifas_Parking"`
	ServiciosCarWash  []models.ServicioCarWash  `json:"Servicios_Car_Wash"`
	VehiculoServicios []models.VehiculoServicio `json:"Vehiculo_Servicios"`
	FacturasCarWash   []models.FacturaCarWash   `json:"Facturas_Car_Wash"`
	TicketsParking    []models.TicketParking    `json:"Tickets_Parking"`
	FacturasParking   []models.FacturaParking   `json:"Facturas_Parking"`
}

// Empty returns a schema-complete document with every collection present and
// empty. It is the fallback when the backing content is missing or corrupt.
func Empty() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize ensures every collection slice is non-nil.
func (d *Document) Normalize() {
	if d.Clientes == nil {
		d.Clientes = []models.Cliente{}
	}
	if d.Vehiculos == nil {
		d.Vehiculos = []models.Vehiculo{}
	}
	if d.TarifasParking == nil {
		d.TarifasParking = []models.TarifaParking{}
	}
	if d.ServiciosCarWash == nil {
		d.ServiciosCarWash = []models.ServicioCarWash{}
	}
	if d.VehiculoServicios == nil {
		d.VehiculoServicios = []models.VehiculoServicio{}
	}
	if d.FacturasCarWash == nil {
		d.FacturasCarWash = []models.FacturaCarWash{}
	}
	if d.TicketsParking == nil {
		d.TicketsParking = []models.TicketParking{}
	}
	if d.FacturasParking == nil {
		d.FacturasParking = []models.FacturaParking{}
	}
}

// Cliente returns the client with the given cedula, or nil.
func (d *Document) Cliente(cedula int) *models.Cliente {
	for i := range d.Clientes {
		if d.Clientes[i].Cedula == cedula {
			return &d.Clientes[i]
		}
	}
	return nil
}

// Vehiculo returns the vehicle with the given plate, or nil.
func (d *Document) Vehiculo(placa string) *models.Vehiculo {
	for i := range d.Vehiculos {
		if d.Vehiculos[i].Placa == placa {
			return &d.Vehiculos[i]
		}
	}
	return nil
}

// Tarifa returns the parking tariff with the given id, or nil.
func (d *Document) Tarifa(id int) *models.TarifaParking {
	for i := range d.TarifasParking {
		if d.TarifasParking[i].ID == id {
			return &d.TarifasParking[i]
		}
	}
	return nil
}

// Servicio returns the car-wash service with the given id, or nil.
func (d *Document) Servicio(id int) *models.ServicioCarWash {
	for i := range d.ServiciosCarWash {
		if d.ServiciosCarWash[i].ID == id {
			return &d.ServiciosCarWash[i]
		}
	}
	return nil
}

// Ticket returns the parking ticket with the given id, or nil.
func (d *Document) Ticket(id int) *models.TicketParking {
	for i := range d.TicketsParking {
		if d.TicketsParking[i].ID == id {
			return &d.TicketsParking[i]
		}
	}
	return nil
}
