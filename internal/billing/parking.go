package billing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mrcarwash/backend/internal/models"
	"github.com/mrcarwash/backend/internal/repository"
	"github.com/mrcarwash/backend/internal/storage"
)

// Parking opens tickets and computes time-based parking fees.
type Parking struct {
	store storage.Store
	now   func() time.Time
}

// NewParking creates a Parking engine over the given store.
func NewParking(store storage.Store) *Parking {
	return &Parking{store: store, now: time.Now}
}

// OpenTicket allocates a new ticket with the entry time taken from the
// server clock. The plate is recorded as given; there is no existence check
// against the vehicle registry, walk-in parking does not require
// registration.
func (p *Parking) OpenTicket(ctx context.Context, placa string) (models.TicketParking, error) {
	var out models.TicketParking
	err := p.store.Update(ctx, func(doc *storage.Document) error {
		out = models.TicketParking{
			ID:          repository.NextID(doc.TicketsParking, ticketID),
			Placa:       placa,
			HoraEntrada: p.now(),
		}
		doc.TicketsParking = append(doc.TicketsParking, out)
		return nil
	})
	if err != nil {
		return models.TicketParking{}, err
	}
	return out, nil
}

// Invoice closes the ticket and bills the elapsed time against the tariff.
//
// Every started hour is billed as a full hour: total = Hora * ceil(elapsed).
// A ticket closed in the same instant it was opened bills ceil(0) = 0.
// The tariff's Fraccion field is not applied.
func (p *Parking) Invoice(ctx context.Context, ticketID, tarifaID int) (models.FacturaParking, error) {
	var out models.FacturaParking
	err := p.store.Update(ctx, func(doc *storage.Document) error {
		ticket := doc.Ticket(ticketID)
		if ticket == nil {
			return fmt.Errorf("ticket %d: %w", ticketID, repository.ErrNotFound)
		}
		tarifa := doc.Tarifa(tarifaID)
		if tarifa == nil {
			return fmt.Errorf("tarifa %d: %w", tarifaID, repository.ErrNotFound)
		}
		if ticket.Cerrado {
			return fmt.Errorf("ticket %d: %w", ticketID, ErrTicketClosed)
		}

		salida := p.now()
		horas := salida.Sub(ticket.HoraEntrada).Hours()
		total := tarifa.Hora * math.Ceil(horas)

		out = models.FacturaParking{
			ID:           repository.NextID(doc.FacturasParking, facturaParkingID),
			TicketID:     ticket.ID,
			TarifaID:     tarifa.ID,
			HoraSalida:   salida,
			Total:        total,
			FechaFactura: salida,
		}
		doc.FacturasParking = append(doc.FacturasParking, out)
		ticket.Cerrado = true
		return nil
	})
	if err != nil {
		return models.FacturaParking{}, err
	}
	return out, nil
}

// ListTickets returns every parking ticket, open and closed.
func (p *Parking) ListTickets(ctx context.Context) ([]models.TicketParking, error) {
	doc, err := p.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.TicketsParking, nil
}

// ListInvoices returns every issued parking invoice.
func (p *Parking) ListInvoices(ctx context.Context) ([]models.FacturaParking, error) {
	doc, err := p.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.FacturasParking, nil
}

func ticketID(t *models.TicketParking) int { return t.ID }

func facturaParkingID(f *models.FacturaParking) int { return f.ID }
