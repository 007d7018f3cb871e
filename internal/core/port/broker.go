package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort delivers serialized domain events. The exchange is derived from
// the entity name and the routing key is the event name.
type BrokerPort interface {
	PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error
	HealthCheck() error
	Close() error
}
