package domain

import (
	"testing"
	"time"
)

func TestMovementType_IsValid(t *testing.T) {
	tests := []struct {
		kind  MovementType
		valid bool
	}{
		{MovementTypeEntrada, true},
		{MovementTypeSaida, true},
		{"ENTRADA", false},
		{"in", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.valid {
				t.Errorf("MovementType(%q).IsValid() = %v, want %v", tt.kind, got, tt.valid)
			}
		})
	}
}

func TestMovementType_Delta(t *testing.T) {
	if got := MovementTypeEntrada.Delta(4); got != 4 {
		t.Fatalf("entrada delta = %d, want 4", got)
	}
	if got := MovementTypeSaida.Delta(4); got != -4 {
		t.Fatalf("saida delta = %d, want -4", got)
	}
	if got := MovementType("x").Delta(4); got != 0 {
		t.Fatalf("unknown delta = %d, want 0", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2025, 10, 15, 7, 0, 0, 123456789, time.FixedZone("BRT", -3*60*60))

	if got := FormatTimestamp(at); got != "2025-10-15T10:00:00.123Z" {
		t.Fatalf("expected UTC millisecond timestamp, got %q", got)
	}
}

func TestNewMovement(t *testing.T) {
	product := &Product{ID: "p1", Name: "Widget"}
	at := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	m := NewMovement("m1", product, MovementTypeSaida, 3, "Entrega pedido", at)

	if m.ID != "m1" || m.ProductID != "p1" {
		t.Fatalf("unexpected ids: %+v", m)
	}
	if m.Type != MovementTypeSaida || m.Quantity != 3 || m.Reason != "Entrega pedido" {
		t.Fatalf("unexpected movement attributes: %+v", m)
	}
	if m.Date != "2025-10-15T10:00:00.000Z" {
		t.Fatalf("unexpected date %q", m.Date)
	}

	product.Name = "Renamed"
	if m.ProductName != "Widget" {
		t.Fatalf("product name snapshot changed to %q", m.ProductName)
	}
}

func TestSortNewestFirst(t *testing.T) {
	movements := []Movement{
		{ID: "old", Date: "2025-10-12T16:00:00.000Z"},
		{ID: "new", Date: "2025-10-15T10:00:00.000Z"},
		{ID: "tie-first", Date: "2025-10-14T09:00:00.000Z"},
		{ID: "tie-second", Date: "2025-10-14T09:00:00.000Z"},
	}

	SortNewestFirst(movements)

	want := []ID{"new", "tie-first", "tie-second", "old"}
	for i, id := range want {
		if movements[i].ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, movements[i].ID)
		}
	}
}

func TestNewMovementRecordedEvent(t *testing.T) {
	m := &Movement{ID: "m1", ProductID: "p1", ProductName: "Widget", Type: MovementTypeEntrada, Quantity: 5, Date: "2025-10-15T10:00:00.000Z"}
	event := NewMovementRecordedEvent(m, 15)

	if event.MovementID != "m1" || event.ProductID != "p1" {
		t.Fatalf("unexpected ids: %+v", event)
	}
	if event.ResultingStock != 15 {
		t.Fatalf("expected resulting stock 15, got %d", event.ResultingStock)
	}
	if event.GetName() != "movement.recorded" {
		t.Fatalf("expected 'movement.recorded', got %q", event.GetName())
	}
	if event.GetEntityName() != "movement" {
		t.Fatalf("expected 'movement', got %q", event.GetEntityName())
	}
}
