package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// NewTx opens a transaction on the test database and rolls it back when the
// test finishes, giving free per-test isolation.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// Reference holds the ids of the rows inserted by SeedReference.
type Reference struct {
	VendorID      int64
	DestinationID int64
	SpeciesID     int64
	CutID         int64
	GradeID       int64
}

// execer is satisfied by pgx.Tx and *pgxpool.Pool.
type execer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedReference inserts the canonical reference data used across the
// integration tests: active vendor "Acme Foods" (ACME) with a contact
// email, destination "Boston" (BOS), species "Salmon", cut "Fillet" and
// grade "A".
//
// The quote tables are emptied first so the advisory next quote id is
// predictable inside the test transaction.
func SeedReference(t *testing.T, db pgx.Tx) Reference {
	t.Helper()
	ctx := context.Background()

	_, err := db.Exec(ctx, `DELETE FROM quote`)
	require.NoError(t, err, "clear quotes")

	var ref Reference
	ref.VendorID = insertID(t, db, `
		INSERT INTO vendors (code, name, country, contact_email)
		VALUES ('ACME', 'Acme Foods', 'Norway', 'sales@acme.example')
		RETURNING id`)
	ref.DestinationID = insertID(t, db, `
		INSERT INTO dictionary (category, code, name, description)
		VALUES ('DESTINATION', 'BOS', 'Boston', 'Logan International')
		RETURNING id`)
	ref.SpeciesID = insertID(t, db, `
		INSERT INTO fish_species (common_name, scientific_name)
		VALUES ('Salmon', 'Salmo salar')
		RETURNING id`)
	ref.CutID = insertID(t, db, `INSERT INTO fish_cut (name) VALUES ('Fillet') RETURNING id`)
	ref.GradeID = insertID(t, db, `INSERT INTO fish_grade (name) VALUES ('A') RETURNING id`)
	return ref
}

// InsertVendor inserts a vendor row and returns its id.
func InsertVendor(t *testing.T, db pgx.Tx, code, name string, active bool) int64 {
	t.Helper()
	return insertID(t, db, `
		INSERT INTO vendors (code, name, country, contact_email, active)
		VALUES (@code, @name, 'Chile', 'ops@example.com', @active)
		RETURNING id`,
		pgx.NamedArgs{"code": code, "name": name, "active": active})
}

func insertID(t *testing.T, db execer, sql string, args ...any) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(context.Background(), sql, args...).Scan(&id)
	require.NoError(t, err, "seed: %s", sql)
	return id
}
