package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// DictionaryRepo defines the read operations for category-scoped dictionary
// entries. Callers pass categories already normalized.
type DictionaryRepo interface {
	// ListByCategory returns the active entries of a category ordered by name.
	// An unknown category yields an empty slice, not an error.
	ListByCategory(ctx context.Context, category string) ([]domain.DictionaryEntry, error)
}

type pgDictionaryRepo struct {
	db db
}

// NewDictionaryRepo constructs a DictionaryRepo backed by the provided db connection.
func NewDictionaryRepo(db db) DictionaryRepo {
	return &pgDictionaryRepo{db: db}
}

func (r *pgDictionaryRepo) ListByCategory(ctx context.Context, category string) ([]domain.DictionaryEntry, error) {
	const q = `
		SELECT id, category, code, name, description
		FROM dictionary
		WHERE category = @category AND active = TRUE
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"category": category})
	if err != nil {
		return nil, fmt.Errorf("repo.DictionaryRepo.ListByCategory: %w", err)
	}
	entries, err := collect(rows, scanDictionaryEntry)
	if err != nil {
		return nil, fmt.Errorf("repo.DictionaryRepo.ListByCategory: %w", err)
	}
	return entries, nil
}

// dictionaryByCode resolves a destination on QuoteRepo.Create's transaction.
func dictionaryByCode(ctx context.Context, q db, category, code string) (domain.DictionaryEntry, error) {
	const sql = `
		SELECT id, category, code, name, description
		FROM dictionary
		WHERE category = @category AND code = @code AND active = TRUE`

	e, err := scanDictionaryEntry(q.QueryRow(ctx, sql, pgx.NamedArgs{"category": category, "code": code}))
	if err != nil {
		return domain.DictionaryEntry{}, notFound(err, "destination", code)
	}
	return e, nil
}

func scanDictionaryEntry(s scanner) (domain.DictionaryEntry, error) {
	var (
		e    domain.DictionaryEntry
		desc pgtype.Text
	)
	if err := s.Scan(&e.ID, &e.Category, &e.Code, &e.Name, &desc); err != nil {
		return domain.DictionaryEntry{}, err
	}
	if desc.Valid {
		d := desc.String
		e.Description = &d
	}
	return e, nil
}
