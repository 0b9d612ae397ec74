package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jask/floorplan/internal/database"
)

var ErrNotFound = errors.New("layout not found")

// LayoutRepo stores layout documents.
type LayoutRepo struct {
	db *sql.DB
}

func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// Upsert inserts e or updates the entry with the same id.
func (r *LayoutRepo) Upsert(ctx context.Context, e LayoutEntry) error {
	now := database.Now()
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO layouts(id, name, document, shelf_count, structure_count, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 document=excluded.document,
	 shelf_count=excluded.shelf_count,
	 structure_count=excluded.structure_count,
	 updated_at=excluded.updated_at;
	`, e.ID, e.Name, string(e.Document), e.ShelfCount, e.StructureCount, now, now)
	return err
}

// SaveByName stores e under its name, replacing the document of an existing
// entry with that name. It returns the id the entry was stored under.
func (r *LayoutRepo) SaveByName(ctx context.Context, e LayoutEntry) (string, error) {
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		var existing string
		err := tx.QueryRowContext(ctx, `SELECT id FROM layouts WHERE name = ?`, e.Name).Scan(&existing)
		switch {
		case err == nil:
			e.ID = existing
		case errors.Is(err, sql.ErrNoRows):
			if e.ID == "" {
				e.ID = uuid.NewString()
			}
		default:
			return err
		}
		now := database.Now()
		_, err = tx.ExecContext(ctx, `
		INSERT INTO layouts(id, name, document, shelf_count, structure_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		 document=excluded.document,
		 shelf_count=excluded.shelf_count,
		 structure_count=excluded.structure_count,
		 updated_at=excluded.updated_at;
		`, e.ID, e.Name, string(e.Document), e.ShelfCount, e.StructureCount, now, now)
		return err
	})
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

// Get returns the entry with the given id.
func (r *LayoutRepo) Get(ctx context.Context, id string) (LayoutEntry, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, document, shelf_count, structure_count, created_at, updated_at
	FROM layouts WHERE id = ?`, id)
	return scanEntry(row)
}

// GetByName returns the entry with the given name.
func (r *LayoutRepo) GetByName(ctx context.Context, name string) (LayoutEntry, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, document, shelf_count, structure_count, created_at, updated_at
	FROM layouts WHERE name = ?`, name)
	return scanEntry(row)
}

// List returns every entry, most recently updated first.
func (r *LayoutRepo) List(ctx context.Context) ([]LayoutEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, document, shelf_count, structure_count, created_at, updated_at
	FROM layouts ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LayoutEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the entry with the given id.
func (r *LayoutRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (LayoutEntry, error) {
	var e LayoutEntry
	var doc string
	err := s.Scan(&e.ID, &e.Name, &doc, &e.ShelfCount, &e.StructureCount, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return LayoutEntry{}, ErrNotFound
	}
	if err != nil {
		return LayoutEntry{}, err
	}
	e.Document = []byte(doc)
	return e, nil
}
