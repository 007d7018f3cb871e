package domain

type ID string

func (id ID) String() string {
	return string(id)
}

type Event interface {
	GetName() string
	GetEntityName() string
}
