package repository

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/mrcarwash/backend/internal/models"
	"github.com/mrcarwash/backend/internal/storage"
	"github.com/mrcarwash/backend/internal/storage/jsonfile"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("jsonfile.New failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNaturalKeyRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create then Get round-trips", func(t *testing.T) {
		clients := NewClients(newTestStore(t))

		created, err := clients.Create(ctx, models.Cliente{
			Cedula: 1001, Nombre: "Maria", Telefono: "555-1234", Direccion: "Av 2",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		got, err := clients.Get(ctx, 1001)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != created {
			t.Errorf("Get = %+v, want %+v", got, created)
		}
	})

	t.Run("duplicate key rejected and store unchanged", func(t *testing.T) {
		clients := NewClients(newTestStore(t))

		if _, err := clients.Create(ctx, models.Cliente{Cedula: 42, Nombre: "Ana"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		before, err := clients.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}

		_, err = clients.Create(ctx, models.Cliente{Cedula: 42, Nombre: "Otra"})
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("Create error = %v, want ErrDuplicateKey", err)
		}

		after, err := clients.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !reflect.DeepEqual(before, after) {
			t.Errorf("store changed by failed create: before %+v, after %+v", before, after)
		}
	})

	t.Run("Get of unknown key fails with ErrNotFound", func(t *testing.T) {
		clients := NewClients(newTestStore(t))
		if _, err := clients.Get(ctx, 9999); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get error = %v, want ErrNotFound", err)
		}
	})

	t.Run("partial update preserves unset fields", func(t *testing.T) {
		vehicles := NewVehicles(newTestStore(t))

		_, err := vehicles.Create(ctx, models.Vehiculo{
			Placa: "ABC123", Marca: "Toyota", Modelo: "Corolla", Color: "blanco",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		rojo := "rojo"
		patch := models.VehiculoPatch{Color: &rojo}
		updated, err := vehicles.Update(ctx, "ABC123", func(v *models.Vehiculo) {
			patch.Apply(v)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		want := models.Vehiculo{Placa: "ABC123", Marca: "Toyota", Modelo: "Corolla", Color: "rojo"}
		if updated != want {
			t.Errorf("Update = %+v, want %+v", updated, want)
		}
	})

	t.Run("Delete returns the record, missing key is ErrNotFound", func(t *testing.T) {
		clients := NewClients(newTestStore(t))

		if _, err := clients.Delete(ctx, 77); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Delete error = %v, want ErrNotFound", err)
		}

		created, err := clients.Create(ctx, models.Cliente{Cedula: 77, Nombre: "Luis"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		deleted, err := clients.Delete(ctx, 77)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if deleted != created {
			t.Errorf("Delete = %+v, want %+v", deleted, created)
		}
		if _, err := clients.Get(ctx, 77); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after delete error = %v, want ErrNotFound", err)
		}
	})
}

func TestAutoIncrementIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("ids start at 1 and increase", func(t *testing.T) {
		tariffs := NewTariffs(newTestStore(t))

		first, err := tariffs.Create(ctx, models.TarifaParking{TipoVehiculo: "carro", Hora: 5})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		second, err := tariffs.Create(ctx, models.TarifaParking{TipoVehiculo: "moto", Hora: 3})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if first.ID != 1 || second.ID != 2 {
			t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
		}
	})

	t.Run("ids are not reused after deleting the max", func(t *testing.T) {
		services := NewServices(newTestStore(t))

		for _, nombre := range []string{"basico", "premium", "encerado"} {
			if _, err := services.Create(ctx, models.ServicioCarWash{Nombre: nombre, Tarifa: 10}); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}
		if _, err := services.Delete(ctx, 3); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		created, err := services.Create(ctx, models.ServicioCarWash{Nombre: "motor", Tarifa: 15})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if created.ID != 4 {
			t.Errorf("id after delete-then-create = %d, want 4", created.ID)
		}
	})

	t.Run("interleaved create and delete stays monotonic", func(t *testing.T) {
		tariffs := NewTariffs(newTestStore(t))

		seen := map[int]bool{}
		for i := 0; i < 10; i++ {
			created, err := tariffs.Create(ctx, models.TarifaParking{TipoVehiculo: "carro", Hora: 5})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if seen[created.ID] {
				t.Fatalf("id %d assigned twice", created.ID)
			}
			seen[created.ID] = true
			if _, err := tariffs.Delete(ctx, created.ID); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
		}
	})

	t.Run("concurrent creates never collide", func(t *testing.T) {
		services := NewServices(newTestStore(t))

		const n = 20
		ids := make(chan int, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := services.Create(ctx, models.ServicioCarWash{Nombre: "lavado", Tarifa: 10})
				if err != nil {
					t.Errorf("Create failed: %v", err)
					return
				}
				ids <- created.ID
			}()
		}
		wg.Wait()
		close(ids)

		seen := map[int]bool{}
		for id := range ids {
			if seen[id] {
				t.Errorf("id %d assigned to two records", id)
			}
			seen[id] = true
		}
	})
}

func TestAssignments(t *testing.T) {
	ctx := context.Background()

	t.Run("Assign requires the vehicle to exist", func(t *testing.T) {
		assignments := NewAssignments(newTestStore(t))

		_, err := assignments.Assign(ctx, "NOPE99", 1)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Assign error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Assign starts unbilled and ListByVehicle filters by plate", func(t *testing.T) {
		store := newTestStore(t)
		vehicles := NewVehicles(store)
		assignments := NewAssignments(store)

		for _, placa := range []string{"AAA111", "BBB222"} {
			if _, err := vehicles.Create(ctx, models.Vehiculo{Placa: placa}); err != nil {
				t.Fatalf("Create vehicle failed: %v", err)
			}
		}

		first, err := assignments.Assign(ctx, "AAA111", 7)
		if err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		if first.Facturado {
			t.Error("new assignment must start unbilled")
		}
		if _, err := assignments.Assign(ctx, "BBB222", 7); err != nil {
			t.Fatalf("Assign failed: %v", err)
		}

		got, err := assignments.ListByVehicle(ctx, "AAA111")
		if err != nil {
			t.Fatalf("ListByVehicle failed: %v", err)
		}
		if len(got) != 1 || got[0].PlacaVehiculo != "AAA111" {
			t.Errorf("ListByVehicle = %+v, want only AAA111", got)
		}
	})
}
