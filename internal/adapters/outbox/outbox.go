package outbox

import "context"

// Entry is one staged event. EventData is the JSON payload published as-is;
// StagedAt is the ISO timestamp of the commit that staged it.
type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
	StagedAt   string
}

// Repository reads events staged by the ledger and drops them once relayed.
//
//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
