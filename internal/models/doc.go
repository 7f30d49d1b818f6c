// Package models defines the domain entities for the parking and car-wash
// backend.
//
// # Entities
//
//   - Cliente: a registered client, keyed by Cedula (national ID)
//   - Vehiculo: a vehicle, keyed by Placa (license plate)
//   - TarifaParking: an hourly parking tariff per vehicle type
//   - ServicioCarWash: a car-wash service in the catalog
//   - VehiculoServicio: a service performed on a vehicle, pending billing
//   - FacturaCarWash: an issued car-wash invoice
//   - TicketParking: an open or closed parking ticket
//   - FacturaParking: an issued parking invoice
//
// JSON tags match the field names of the stored data file exactly (Spanish,
// snake-cased compounds like Placa_Vehiculo). Existing data files and the
// mobile frontend depend on that casing, so tags must not be renamed.
//
// Invoices are immutable once created: FacturaCarWash embeds a denormalized
// snapshot of each billed service (id, name, price at billing time), so later
// catalog edits never change past invoices.
package models
