package repos

import (
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// Scanner maps result rows onto the `db`-tagged row types of this package.
type Scanner interface {
	ScanAll(dst any, rows pgx.Rows) error
	// ScanOne fails with an error satisfying IsNotFound on an empty result.
	ScanOne(dst any, rows pgx.Rows) error
	IsNotFound(err error) bool
}

type PgxScanner struct {
	api *pgxscan.API
}

func NewPgxScanner() *PgxScanner {
	return &PgxScanner{api: pgxscan.DefaultAPI}
}

func (s *PgxScanner) ScanAll(dst any, rows pgx.Rows) error {
	if err := s.api.ScanAll(dst, rows); err != nil {
		return fmt.Errorf("scanning rows: %w", err)
	}

	return nil
}

func (s *PgxScanner) ScanOne(dst any, rows pgx.Rows) error {
	return s.api.ScanOne(dst, rows)
}

func (s *PgxScanner) IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
