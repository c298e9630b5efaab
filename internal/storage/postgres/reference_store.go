package postgres

import (
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/reference"
)

// ReferenceStore implements the reference.Store interface using PostgreSQL
type ReferenceStore struct {
	db       *pgxpool.Pool
	regions  *Table[*reference.Region]
	cities   *Table[*reference.City]
	genders  *Table[*reference.Gender]
	statuses *Table[*reference.Status]
}

var _ reference.Store = (*ReferenceStore)(nil)

func (store *ReferenceStore) Regions() query.Queryable[*reference.Region] {
	return NewQuery[*reference.Region](store.db, store.regions)
}

func (store *ReferenceStore) Cities() query.Queryable[*reference.City] {
	return NewQuery[*reference.City](store.db, store.cities)
}

func (store *ReferenceStore) Genders() query.Queryable[*reference.Gender] {
	return NewQuery[*reference.Gender](store.db, store.genders)
}

func (store *ReferenceStore) Statuses() query.Queryable[*reference.Status] {
	return NewQuery[*reference.Status](store.db, store.statuses)
}
