package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"music-catalog/internal/model"
)

// classify maps driver errors to store sentinels and returns nil for anything
// else. A foreign key violation means a missing parent on insert or update and
// a live child on delete, so callers pass the sentinel that fits.
func classify(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return model.ErrDuplicate
		case pgerrcode.ForeignKeyViolation:
			return onForeignKey
		}
	}
	return nil
}

func offsetLimit(page model.Page) (int, int) {
	limit := page.Limit
	if limit <= 0 {
		limit = model.DefaultPageLimit
	}
	return max(page.Offset, 0), limit
}
