package repository

import (
	"context"
	"fmt"

	"github.com/mrcarwash/backend/internal/models"
	"github.com/mrcarwash/backend/internal/storage"
)

// NewClients returns the repository for the Clientes collection, keyed by
// cedula.
func NewClients(store storage.Store) *Repository[models.Cliente, int] {
	return &Repository[models.Cliente, int]{
		store: store,
		name:  "cliente",
		slot:  func(d *storage.Document) *[]models.Cliente { return &d.Clientes },
		keyOf: func(c *models.Cliente) int { return c.Cedula },
	}
}

// NewVehicles returns the repository for the Vehiculos collection, keyed by
// plate.
func NewVehicles(store storage.Store) *Repository[models.Vehiculo, string] {
	return &Repository[models.Vehiculo, string]{
		store: store,
		name:  "vehiculo",
		slot:  func(d *storage.Document) *[]models.Vehiculo { return &d.Vehiculos },
		keyOf: func(v *models.Vehiculo) string { return v.Placa },
	}
}

// NewTariffs returns the repository for the Tarifas_Parking collection.
func NewTariffs(store storage.Store) *Repository[models.TarifaParking, int] {
	return &Repository[models.TarifaParking, int]{
		store: store,
		name:  "tarifa",
		slot:  func(d *storage.Document) *[]models.TarifaParking { return &d.TarifasParking },
		keyOf: func(t *models.TarifaParking) int { return t.ID },
		idOf:  func(t *models.TarifaParking) int { return t.ID },
		setID: func(t *models.TarifaParking, id int) { t.ID = id },
	}
}

// NewServices returns the repository for the Servicios_Car_Wash collection.
func NewServices(store storage.Store) *Repository[models.ServicioCarWash, int] {
	return &Repository[models.ServicioCarWash, int]{
		store: store,
		name:  "servicio",
		slot:  func(d *storage.Document) *[]models.ServicioCarWash { return &d.ServiciosCarWash },
		keyOf: func(s *models.ServicioCarWash) int { return s.ID },
		idOf:  func(s *models.ServicioCarWash) int { return s.ID },
		setID: func(s *models.ServicioCarWash, id int) { s.ID = id },
	}
}

// Assignments is the repository for the Vehiculo_Servicios collection, with
// the extra operations the vehicle-services endpoints need.
type Assignments struct {
	*Repository[models.VehiculoServicio, int]
}

// NewAssignments returns the repository for the Vehiculo_Servicios
// collection.
func NewAssignments(store storage.Store) *Assignments {
	return &Assignments{
		Repository: &Repository[models.VehiculoServicio, int]{
			store: store,
			name:  "servicio asignado",
			slot:  func(d *storage.Document) *[]models.VehiculoServicio { return &d.VehiculoServicios },
			keyOf: func(a *models.VehiculoServicio) int { return a.ID },
			idOf:  func(a *models.VehiculoServicio) int { return a.ID },
			setID: func(a *models.VehiculoServicio, id int) { a.ID = id },
		},
	}
}

// ListByVehicle returns every assignment recorded for the given plate, in
// insertion order.
func (a *Assignments) ListByVehicle(ctx context.Context, placa string) ([]models.VehiculoServicio, error) {
	doc, err := a.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.VehiculoServicio{}
	for _, vs := range doc.VehiculoServicios {
		if vs.PlacaVehiculo == placa {
			out = append(out, vs)
		}
	}
	return out, nil
}

// Assign records a service performed on a vehicle. The vehicle must exist;
// new assignments always start unbilled.
func (a *Assignments) Assign(ctx context.Context, placa string, servicioID int) (models.VehiculoServicio, error) {
	rec := models.VehiculoServicio{
		PlacaVehiculo: placa,
		ServicioID:    servicioID,
		Facturado:     false,
	}
	err := a.store.Update(ctx, func(doc *storage.Document) error {
		if doc.Vehiculo(placa) == nil {
			return fmt.Errorf("vehiculo %s: %w", placa, ErrNotFound)
		}
		id := NextID(doc.VehiculoServicios, a.idOf)
		if id <= a.lastID {
			id = a.lastID + 1
		}
		a.lastID = id
		rec.ID = id
		doc.VehiculoServicios = append(doc.VehiculoServicios, rec)
		return nil
	})
	if err != nil {
		return models.VehiculoServicio{}, err
	}
	return rec, nil
}
