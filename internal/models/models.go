package models

import "time"

// Cliente is a registered client of the business.
type Cliente struct {
	// Cedula is the client's national ID and the natural primary key.
	Cedula int `json:"Cedula"`

	Nombre    string `json:"Nombre"`
	Telefono  string `json:"Telefono"`
	Direccion string `json:"Direccion"`
}

// Vehiculo is a vehicle, independent of any client.
type Vehiculo struct {
	// Placa is the license plate and the natural primary key.
	Placa string `json:"Placa"`

	Marca  string `json:"Marca"`
	Modelo string `json:"Modelo"`
	Color  string `json:"Color"`
}

// TarifaParking is an hourly parking tariff for one vehicle type.
type TarifaParking struct {
	ID           int    `json:"id"`
	TipoVehiculo string `json:"Tipo_Vehiculo"`

	// Hora is the rate charged per (started) hour.
	Hora float64 `json:"Hora"`

	// Fraccion is carried for compatibility with existing data but is not
	// applied anywhere in fee computation. Billing is ceiling-to-hour only.
	Fraccion float64 `json:"Fraccion"`
}

// ServicioCarWash is an entry in the car-wash service catalog.
type ServicioCarWash struct {
	ID     int     `json:"id"`
	Nombre string  `json:"Nombre"`
	Tarifa float64 `json:"Tarifa"`
}

// VehiculoServicio records one service performed on a vehicle.
// Facturado flips false to true exactly once, when the service is consumed
// by a car-wash invoice, and never reverts.
type VehiculoServicio struct {
	ID            int    `json:"id"`
	PlacaVehiculo string `json:"Placa_Vehiculo"`
	ServicioID    int    `json:"Servicio_id"`
	Facturado     bool   `json:"Facturado"`
}

// LineaServicio is a denormalized invoice line: the service's id, name and
// price as they were at billing time.
type LineaServicio struct {
	ServicioID int     `json:"Servicio_id"`
	Nombre     string  `json:"Nombre"`
	Tarifa     float64 `json:"Tarifa"`
}

// FacturaCarWash is an issued car-wash invoice. Immutable once created.
type FacturaCarWash struct {
	ID            int             `json:"id"`
	CedulaCliente int             `json:"Cedula_Cliente"`
	PlacaVehiculo string          `json:"Placa_Vehiculo"`
	Servicios     []LineaServicio `json:"Servicios"`
	Total         float64         `json:"Total"`
	FechaFactura  time.Time       `json:"Fecha_Factura"`
}

// TicketParking is a parking ticket. HoraEntrada is set once, at creation,
// by the server clock. Cerrado marks a ticket that has already been invoiced;
// closed tickets cannot be invoiced again.
type TicketParking struct {
	ID          int       `json:"id"`
	Placa       string    `json:"Placa"`
	HoraEntrada time.Time `json:"Hora_Entrada"`
	Cerrado     bool      `json:"Cerrado"`
}

// FacturaParking is an issued parking invoice. Immutable once created.
type FacturaParking struct {
	ID           int       `json:"id"`
	TicketID     int       `json:"Ticket_id"`
	TarifaID     int       `json:"Tarifas_Parking_id"`
	HoraSalida   time.Time `json:"Hora_Salida"`
	Total        float64   `json:"Total"`
	FechaFactura time.Time `json:"Fecha_Factura"`
}
