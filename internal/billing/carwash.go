// Package billing implements the two billing engines: car-wash invoicing
// over unbilled service assignments and time-based parking invoicing.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrcarwash/backend/internal/models"
	"github.com/mrcarwash/backend/internal/repository"
	"github.com/mrcarwash/backend/internal/storage"
)

// Sentinel errors for billing failures.
var (
	// ErrNothingToBill means the vehicle has no unbilled service
	// assignments.
	ErrNothingToBill = errors.New("nothing to bill")

	// ErrDataIntegrity means an assignment references a service that no
	// longer exists. Billing never silently drops a line item.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrTicketClosed means the parking ticket was already invoiced.
	ErrTicketClosed = errors.New("ticket already closed")
)

// CarWash aggregates a vehicle's unbilled service assignments into invoices.
type CarWash struct {
	store storage.Store
	now   func() time.Time
}

// NewCarWash creates a CarWash engine over the given store.
func NewCarWash(store storage.Store) *CarWash {
	return &CarWash{store: store, now: time.Now}
}

// Invoice bills every unbilled service assignment of the vehicle to the
// client and returns the created invoice.
//
// The invoice append and the Facturado flips happen inside one store.Update,
// so they persist in the same write: an assignment is consumed by at most
// one invoice, and a failed write bills nothing.
func (b *CarWash) Invoice(ctx context.Context, cedula int, placa string) (models.FacturaCarWash, error) {
	var out models.FacturaCarWash
	err := b.store.Update(ctx, func(doc *storage.Document) error {
		if doc.Cliente(cedula) == nil {
			return fmt.Errorf("cliente %d: %w", cedula, repository.ErrNotFound)
		}
		if doc.Vehiculo(placa) == nil {
			return fmt.Errorf("vehiculo %s: %w", placa, repository.ErrNotFound)
		}

		var pending []int // indices into doc.VehiculoServicios
		for i := range doc.VehiculoServicios {
			vs := &doc.VehiculoServicios[i]
			if vs.PlacaVehiculo == placa && !vs.Facturado {
				pending = append(pending, i)
			}
		}
		if len(pending) == 0 {
			return fmt.Errorf("vehiculo %s: %w", placa, ErrNothingToBill)
		}

		lineas := make([]models.LineaServicio, 0, len(pending))
		total := 0.0
		for _, i := range pending {
			vs := doc.VehiculoServicios[i]
			servicio := doc.Servicio(vs.ServicioID)
			if servicio == nil {
				return fmt.Errorf("servicio %d referenced by assignment %d: %w",
					vs.ServicioID, vs.ID, ErrDataIntegrity)
			}
			lineas = append(lineas, models.LineaServicio{
				ServicioID: servicio.ID,
				Nombre:     servicio.Nombre,
				Tarifa:     servicio.Tarifa,
			})
			total += servicio.Tarifa
		}

		out = models.FacturaCarWash{
			ID:            repository.NextID(doc.FacturasCarWash, facturaCarWashID),
			CedulaCliente: cedula,
			PlacaVehiculo: placa,
			Servicios:     lineas,
			Total:         total,
			FechaFactura:  b.now(),
		}
		doc.FacturasCarWash = append(doc.FacturasCarWash, out)

		for _, i := range pending {
			doc.VehiculoServicios[i].Facturado = true
		}
		return nil
	})
	if err != nil {
		return models.FacturaCarWash{}, err
	}
	return out, nil
}

// ListInvoices returns every issued car-wash invoice.
func (b *CarWash) ListInvoices(ctx context.Context) ([]models.FacturaCarWash, error) {
	doc, err := b.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.FacturasCarWash, nil
}

func facturaCarWashID(f *models.FacturaCarWash) int { return f.ID }
