package storage

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/talenthub/jobboard-be/shared/postgresql"
)

const uniqueViolation = "23505"

type Storage struct {
	client *postgresql.Client
	db     *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		client: pg,
		db:     pg.GetDB(),
	}
}

// limitOffset converts 1-based page parameters into a LIMIT/OFFSET pair.
func limitOffset(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return perPage, (page - 1) * perPage
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
