package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mrcarwash/backend/internal/models"
	"github.com/mrcarwash/backend/internal/storage"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	store, err := New(path, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Read of missing file yields empty schema-complete document", func(t *testing.T) {
		store := newTestStore(t)

		doc, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}

		// Every collection must serialize as [], never null.
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if strings.Contains(string(raw), "null") {
			t.Errorf("document has nil collections: %s", raw)
		}
		for _, key := range []string{
			"Clientes", "Vehiculos", "Tarifas_Parking", "Servicios_Car_Wash",
			"Vehiculo_Servicios", "Facturas_Car_Wash", "Tickets_Parking", "Facturas_Parking",
		} {
			if !strings.Contains(string(raw), fmt.Sprintf("%q", key)) {
				t.Errorf("document is missing collection %q", key)
			}
		}
	})

	t.Run("Update persists and Read round-trips", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Update(ctx, func(doc *storage.Document) error {
			doc.Clientes = append(doc.Clientes, models.Cliente{
				Cedula: 123, Nombre: "Ana", Telefono: "555", Direccion: "Calle 1",
			})
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		doc, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if len(doc.Clientes) != 1 || doc.Clientes[0].Nombre != "Ana" {
			t.Errorf("unexpected Clientes after round-trip: %+v", doc.Clientes)
		}
	})

	t.Run("written file contains every collection key", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.Update(ctx, func(*storage.Document) error { return nil }); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		raw, err := os.ReadFile(store.path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		for _, key := range []string{
			"Clientes", "Vehiculos", "Tarifas_Parking", "Servicios_Car_Wash",
			"Vehiculo_Servicios", "Facturas_Car_Wash", "Tickets_Parking", "Facturas_Parking",
		} {
			if !strings.Contains(string(raw), fmt.Sprintf("%q", key)) {
				t.Errorf("data file is missing collection key %q", key)
			}
		}
	})

	t.Run("corrupt file reads as empty and heals on next write", func(t *testing.T) {
		store := newTestStore(t)
		if err := os.WriteFile(store.path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		doc, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read of corrupt file failed: %v", err)
		}
		if len(doc.Clientes) != 0 {
			t.Errorf("expected empty document, got %+v", doc)
		}

		err = store.Update(ctx, func(doc *storage.Document) error {
			doc.Vehiculos = append(doc.Vehiculos, models.Vehiculo{Placa: "ABC123"})
			return nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		raw, err := os.ReadFile(store.path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		var healed storage.Document
		if err := json.Unmarshal(raw, &healed); err != nil {
			t.Fatalf("data file still not valid JSON after write: %v", err)
		}
	})

	t.Run("Update error discards the mutation", func(t *testing.T) {
		store := newTestStore(t)

		wantErr := errors.New("boom")
		err := store.Update(ctx, func(doc *storage.Document) error {
			doc.Clientes = append(doc.Clientes, models.Cliente{Cedula: 1})
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("Update error = %v, want %v", err, wantErr)
		}

		doc, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if len(doc.Clientes) != 0 {
			t.Errorf("mutation persisted despite error: %+v", doc.Clientes)
		}
	})

	t.Run("bounded lock wait surfaces ErrBusy", func(t *testing.T) {
		store := newTestStore(t, WithLockTimeout(50*time.Millisecond))

		store.sem <- struct{}{} // hold the writer lock
		defer func() { <-store.sem }()

		_, err := store.Read(ctx)
		if !errors.Is(err, storage.ErrBusy) {
			t.Errorf("Read error = %v, want ErrBusy", err)
		}

		err = store.Update(ctx, func(*storage.Document) error { return nil })
		if !errors.Is(err, storage.ErrBusy) {
			t.Errorf("Update error = %v, want ErrBusy", err)
		}
	})

	t.Run("canceled context surfaces ErrBusy", func(t *testing.T) {
		store := newTestStore(t)

		store.sem <- struct{}{}
		defer func() { <-store.sem }()

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Read(canceled)
		if !errors.Is(err, storage.ErrBusy) {
			t.Errorf("Read error = %v, want ErrBusy", err)
		}
	})

	t.Run("concurrent updates never lose writes", func(t *testing.T) {
		store := newTestStore(t)

		const writers = 25
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				err := store.Update(ctx, func(doc *storage.Document) error {
					doc.Clientes = append(doc.Clientes, models.Cliente{Cedula: n})
					return nil
				})
				if err != nil {
					t.Errorf("Update %d failed: %v", n, err)
				}
			}(i)
		}
		wg.Wait()

		doc, err := store.Read(ctx)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if len(doc.Clientes) != writers {
			t.Errorf("got %d clients, want %d (lost update)", len(doc.Clientes), writers)
		}
	})
}
