package domain

import (
	"sort"
	"time"
)

type MovementType string

const (
	MovementTypeEntrada MovementType = "entrada"
	MovementTypeSaida   MovementType = "saida"
)

func (t MovementType) IsValid() bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida
}

// Delta returns the signed quantity change: credit for entrada, debit for saida.
func (t MovementType) Delta(quantity int) int {
	switch t {
	case MovementTypeEntrada:
		return quantity
	case MovementTypeSaida:
		return -quantity
	default:
		return 0
	}
}

// TimestampLayout matches JavaScript's Date.toISOString, so timestamps compare
// lexicographically in chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type Movement struct {
	ID          ID           `json:"id"`
	ProductID   ID           `json:"productId"`
	ProductName string       `json:"productName"`
	Type        MovementType `json:"type"`
	Quantity    int          `json:"quantity"`
	Reason      string       `json:"reason,omitempty"`
	Date        string       `json:"date"`
}

type MovementInput struct {
	ProductID ID           `json:"productId"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Reason    string       `json:"reason,omitempty"`
}

// NewMovement snapshots the product name at creation time; later renames of
// the product are not reflected on the movement.
func NewMovement(id ID, product *Product, movementType MovementType, quantity int, reason string, at time.Time) *Movement {
	return &Movement{
		ID:          id,
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        movementType,
		Quantity:    quantity,
		Reason:      reason,
		Date:        FormatTimestamp(at),
	}
}

// SortNewestFirst orders movements by date descending. Equal dates keep their
// relative order, so a prepended movement stays ahead of its peers.
func SortNewestFirst(movements []Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date > movements[j].Date
	})
}

type MovementRecordedEvent struct {
	MovementID     ID           `json:"movement_id"`
	ProductID      ID           `json:"product_id"`
	ProductName    string       `json:"product_name"`
	Type           MovementType `json:"type"`
	Quantity       int          `json:"quantity"`
	Reason         string       `json:"reason,omitempty"`
	Date           string       `json:"date"`
	ResultingStock int          `json:"resulting_stock"`
}

func (e *MovementRecordedEvent) GetName() string {
	return "movement.recorded"
}

func (e *MovementRecordedEvent) GetEntityName() string {
	return "movement"
}

func NewMovementRecordedEvent(movement *Movement, resultingStock int) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		MovementID:     movement.ID,
		ProductID:      movement.ProductID,
		ProductName:    movement.ProductName,
		Type:           movement.Type,
		Quantity:       movement.Quantity,
		Reason:         movement.Reason,
		Date:           movement.Date,
		ResultingStock: resultingStock,
	}
}
