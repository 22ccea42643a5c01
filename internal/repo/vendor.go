package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// VendorRepo defines the read operations for Vendors.
// Only active vendors are ever returned.
type VendorRepo interface {
	// GetByCode returns the active vendor with the given code together with
	// the advisory next quote id.
	// Returns domain.ErrNotFound if no active vendor has that code.
	GetByCode(ctx context.Context, code string) (domain.VendorProfile, error)
}

type pgVendorRepo struct {
	db db
}

// NewVendorRepo constructs a VendorRepo backed by the provided db connection.
func NewVendorRepo(db db) VendorRepo {
	return &pgVendorRepo{db: db}
}

const vendorColumns = `v.id, v.code, v.name, v.country, v.contact_email, v.active, v.is_email_enabled`

func (r *pgVendorRepo) GetByCode(ctx context.Context, code string) (domain.VendorProfile, error) {
	const q = `
		SELECT ` + vendorColumns + `,
		       COALESCE((SELECT MAX(id) + 1 FROM quote), 1) AS nextquoteid
		FROM vendors v
		WHERE v.code = @code AND v.active = TRUE`

	var p domain.VendorProfile
	var email pgtype.Text
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code}).Scan(
		&p.ID, &p.Code, &p.Name, &p.Country, &email, &p.Active, &p.EmailEnabled, &p.NextQuoteID,
	)
	if err != nil {
		return domain.VendorProfile{}, fmt.Errorf("repo.VendorRepo.GetByCode: %w", notFound(err, "vendor", code))
	}
	p.ContactEmail = email.String
	return p, nil
}

// vendorByName resolves the submitting vendor on QuoteRepo.Create's
// transaction. Inactive vendors are not found.
func vendorByName(ctx context.Context, q db, name string) (domain.Vendor, error) {
	const sql = `
		SELECT ` + vendorColumns + `
		FROM vendors v
		WHERE v.name = @name AND v.active = TRUE`

	v, err := scanVendor(q.QueryRow(ctx, sql, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Vendor{}, notFound(err, "vendor", name)
	}
	return v, nil
}

func scanVendor(s scanner) (domain.Vendor, error) {
	var (
		v     domain.Vendor
		email pgtype.Text
	)
	if err := s.Scan(&v.ID, &v.Code, &v.Name, &v.Country, &email, &v.Active, &v.EmailEnabled); err != nil {
		return domain.Vendor{}, err
	}
	v.ContactEmail = email.String
	return v, nil
}
