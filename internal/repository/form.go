package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FormEntry is one landing-page form submission, backed by one row of
// the landingpage_form table.
//
// ID is zero until the first successful save assigns it; after that
// it never changes. The struct carries no behavior beyond IsNew: the
// fields are the data contract, validation belongs to the request
// layer, and persistence belongs to FormRepository.
type FormEntry struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// IsNew reports whether the entry has been persisted yet.
func (e *FormEntry) IsNew() bool {
	return e.ID == 0
}

// ListFilter narrows and pages the form entry collection.
type ListFilter struct {
	// CustomerID filters to one customer when non-nil.
	CustomerID *int64

	// Limit caps the page size; it is clamped to (0, MaxListLimit].
	Limit int

	// Offset skips past already-seen entries.
	Offset int
}

const (
	// DefaultListLimit applies when a filter requests no limit.
	DefaultListLimit = 50

	// MaxListLimit is the hard page-size ceiling.
	MaxListLimit = 200
)

// FormRepository binds FormEntry to the landingpage_form table. It
// exposes the persistence contract the service layer consumes:
// save, fetch-by-id, delete, and a filterable list.
type FormRepository struct {
	pool *pgxpool.Pool
}

// NewFormRepository constructs a FormRepository on the given pool.
func NewFormRepository(pool *pgxpool.Pool) *FormRepository {
	return &FormRepository{pool: pool}
}

// tableAnnotation tags no-rows errors with the table name so the
// sqlerr translator can name the entity in 404 responses.
const tableAnnotation = "table:landingpage_form: %w"

// Save persists the entry.
//
// An entry without an id is inserted and the generated identifier
// (and creation timestamp) are written back onto it. An entry with an
// id updates the matching row. Any storage rejection surfaces as a
// *CouldNotSaveError preserving the cause; updating a row that no
// longer exists counts as a rejection.
func (r *FormRepository) Save(ctx context.Context, entry *FormEntry) error {
	if entry.IsNew() {
		err := r.pool.QueryRow(ctx,
			`INSERT INTO landingpage_form (customer_id, comment)
			 VALUES ($1, $2)
			 RETURNING id, created_at`,
			entry.CustomerID, entry.Comment,
		).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			return &CouldNotSaveError{Cause: err}
		}
		return nil
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE landingpage_form
		 SET customer_id = $1, comment = $2
		 WHERE id = $3`,
		entry.CustomerID, entry.Comment, entry.ID,
	)
	if err != nil {
		return &CouldNotSaveError{Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return &CouldNotSaveError{Cause: fmt.Errorf(tableAnnotation, pgx.ErrNoRows)}
	}

	return nil
}

// GetByID fetches the entry with the given id.
//
// A missing row is a distinguishable outcome: the returned error
// wraps pgx.ErrNoRows (annotated with the table name), never a
// silently empty entity.
func (r *FormRepository) GetByID(ctx context.Context, id int64) (*FormEntry, error) {
	var entry FormEntry
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer_id, comment, created_at
		 FROM landingpage_form
		 WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.CustomerID, &entry.Comment, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf(tableAnnotation, pgx.ErrNoRows)
		}
		return nil, err
	}

	return &entry, nil
}

// Delete removes the row matching the entry's id.
//
// It requires a persisted entry; deleting an entry whose row is gone
// (or was never saved) fails with a *CouldNotDeleteError.
func (r *FormRepository) Delete(ctx context.Context, entry *FormEntry) error {
	if entry.IsNew() {
		return &CouldNotDeleteError{Cause: errors.New("entry has no id")}
	}

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM landingpage_form WHERE id = $1`,
		entry.ID,
	)
	if err != nil {
		return &CouldNotDeleteError{Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return &CouldNotDeleteError{Cause: fmt.Errorf(tableAnnotation, pgx.ErrNoRows)}
	}

	return nil
}

// List returns a page of entries, newest first, optionally narrowed
// to one customer. Filtering and paging happen in SQL.
func (r *FormRepository) List(ctx context.Context, filter ListFilter) ([]FormEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, customer_id, comment, created_at
	          FROM landingpage_form`
	args := []any{}

	if filter.CustomerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *filter.CustomerID)
	}

	query += fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[FormEntry])
	if err != nil {
		return nil, err
	}

	return entries, nil
}
