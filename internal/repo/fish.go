package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// FishRepo defines the read operations for the fish vocabularies.
type FishRepo interface {
	// ListSpecies returns active species in insertion order.
	ListSpecies(ctx context.Context) ([]domain.FishSpecies, error)
	// ListCuts returns all cuts ordered by name.
	ListCuts(ctx context.Context) ([]domain.FishCut, error)
	// ListGrades returns all grades ordered by name.
	ListGrades(ctx context.Context) ([]domain.FishGrade, error)
}

type pgFishRepo struct {
	db db
}

// NewFishRepo constructs a FishRepo backed by the provided db connection.
func NewFishRepo(db db) FishRepo {
	return &pgFishRepo{db: db}
}

func (r *pgFishRepo) ListSpecies(ctx context.Context) ([]domain.FishSpecies, error) {
	const q = `
		SELECT id, common_name, scientific_name
		FROM fish_species
		WHERE is_active = TRUE
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.FishRepo.ListSpecies: %w", err)
	}
	species, err := collect(rows, scanSpecies)
	if err != nil {
		return nil, fmt.Errorf("repo.FishRepo.ListSpecies: %w", err)
	}
	return species, nil
}

func (r *pgFishRepo) ListCuts(ctx context.Context) ([]domain.FishCut, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM fish_cut ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("repo.FishRepo.ListCuts: %w", err)
	}
	cuts, err := collect(rows, func(s scanner) (domain.FishCut, error) {
		var c domain.FishCut
		err := s.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.FishRepo.ListCuts: %w", err)
	}
	return cuts, nil
}

func (r *pgFishRepo) ListGrades(ctx context.Context) ([]domain.FishGrade, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM fish_grade ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("repo.FishRepo.ListGrades: %w", err)
	}
	grades, err := collect(rows, func(s scanner) (domain.FishGrade, error) {
		var g domain.FishGrade
		err := s.Scan(&g.ID, &g.Name)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.FishRepo.ListGrades: %w", err)
	}
	return grades, nil
}

func scanSpecies(s scanner) (domain.FishSpecies, error) {
	var (
		f   domain.FishSpecies
		sci pgtype.Text
	)
	if err := s.Scan(&f.ID, &f.CommonName, &sci); err != nil {
		return domain.FishSpecies{}, err
	}
	if sci.Valid {
		v := sci.String
		f.ScientificName = &v
	}
	return f, nil
}

// The lookups below resolve display names to ids on the creating transaction.

func speciesIDByName(ctx context.Context, q db, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`SELECT id FROM fish_species WHERE common_name = @name AND is_active = TRUE`,
		pgx.NamedArgs{"name": name},
	).Scan(&id)
	return id, notFound(err, "fish", name)
}

func cutIDByName(ctx context.Context, q db, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM fish_cut WHERE name = @name`, pgx.NamedArgs{"name": name}).Scan(&id)
	return id, notFound(err, "cut", name)
}

func gradeIDByName(ctx context.Context, q db, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM fish_grade WHERE name = @name`, pgx.NamedArgs{"name": name}).Scan(&id)
	return id, notFound(err, "grade", name)
}
