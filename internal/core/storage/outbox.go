package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rafaelleal24/stock-control/internal/core/domain"
)

// OutboxRecord is a domain event waiting to be relayed to the broker. Records
// are staged in the same commit as the state change that produced them.
type OutboxRecord struct {
	ID         string          `json:"id"`
	EventName  string          `json:"eventName"`
	EntityName string          `json:"entityName"`
	EventData  json.RawMessage `json:"eventData"`
	CreatedAt  string          `json:"createdAt"`
}

func NewOutboxRecord(id string, event domain.Event, at time.Time) (OutboxRecord, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return OutboxRecord{}, fmt.Errorf("storage: encode event %s: %w", event.GetName(), err)
	}
	return OutboxRecord{
		ID:         id,
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
		CreatedAt:  domain.FormatTimestamp(at),
	}, nil
}
