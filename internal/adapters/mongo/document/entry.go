package document

import "time"

// EntryDocument holds one serialized collection keyed by its namespaced name.
type EntryDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}
