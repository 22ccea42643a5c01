package repo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// QuoteRepo defines the persistence operations for the quote aggregate
// (header, destinations and products).
type QuoteRepo interface {
	// Create resolves every name in the submission and inserts the header,
	// destinations and products in one transaction. Nothing is written unless
	// every vendor, destination, fish, cut and grade resolves.
	// Returns the submitted id unchanged, a domain.NotFoundError naming the
	// first unresolved reference, or domain.ErrConflict if the id is taken.
	Create(ctx context.Context, sub domain.QuoteSubmission) (int64, error)

	// GetSnapshot re-reads a quote with vendor, destination, fish, cut and
	// grade display names. Children come back in insertion order.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetSnapshot(ctx context.Context, id int64) (domain.QuoteSnapshot, error)

	// Delete removes a quote and, by cascade, its children.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

type pgQuoteRepo struct {
	db db
}

// NewQuoteRepo constructs a QuoteRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewQuoteRepo(db db) QuoteRepo {
	return &pgQuoteRepo{db: db}
}

type resolvedDestination struct {
	id int64
	domain.DestinationSubmission
}

type resolvedProduct struct {
	fishID, cutID, gradeID int64
	domain.ProductSubmission
}

func (r *pgQuoteRepo) Create(ctx context.Context, sub domain.QuoteSubmission) (int64, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		vendor, err := vendorByName(ctx, tx, sub.VendorName)
		if err != nil {
			return err
		}

		dests := make([]resolvedDestination, 0, len(sub.Destinations))
		for _, d := range sub.Destinations {
			code, err := d.ResolvedCode()
			if err != nil {
				return err
			}
			entry, err := dictionaryByCode(ctx, tx, domain.CategoryDestination, code)
			if err != nil {
				return err
			}
			dests = append(dests, resolvedDestination{id: entry.ID, DestinationSubmission: d})
		}

		products := make([]resolvedProduct, 0, len(sub.Products))
		for _, p := range sub.Products {
			rp := resolvedProduct{ProductSubmission: p}
			if rp.fishID, err = speciesIDByName(ctx, tx, p.FishCommonName); err != nil {
				return err
			}
			if rp.cutID, err = cutIDByName(ctx, tx, p.CutName); err != nil {
				return err
			}
			if rp.gradeID, err = gradeIDByName(ctx, tx, p.GradeName); err != nil {
				return err
			}
			products = append(products, rp)
		}

		return insertQuote(ctx, tx, sub, vendor.ID, dests, products)
	})
	if err != nil {
		return 0, fmt.Errorf("repo.QuoteRepo.Create: %w", err)
	}
	return sub.ID, nil
}

// insertQuote writes the header and then each child in submission order.
func insertQuote(ctx context.Context, tx pgx.Tx, sub domain.QuoteSubmission, vendorID int64,
	dests []resolvedDestination, products []resolvedProduct) error {
	const qHeader = `
		INSERT INTO quote (id, vendor_id, quote_valid_till, notes, price_negotiable, exclusive_offer)
		VALUES (@id, @vendor_id, @valid_till, @notes, @price_negotiable, @exclusive_offer)`

	_, err := tx.Exec(ctx, qHeader, pgx.NamedArgs{
		"id":               sub.ID,
		"vendor_id":        vendorID,
		"valid_till":       pgtype.Date{Time: sub.ValidTill, Valid: true},
		"notes":            sub.Notes,
		"price_negotiable": sub.PriceNegotiable,
		"exclusive_offer":  sub.ExclusiveOffer,
	})
	if err != nil {
		return conflict(err, "quote "+strconv.FormatInt(sub.ID, 10)+" already exists")
	}

	const qDest = `
		INSERT INTO quote_destination (quote_id, destination_id, airfreight_per_kg, arrival_date, min_weight, max_weight)
		VALUES (@quote_id, @destination_id, @airfreight, @arrival_date, @min_weight, @max_weight)`

	for _, d := range dests {
		_, err := tx.Exec(ctx, qDest, pgx.NamedArgs{
			"quote_id":       sub.ID,
			"destination_id": d.id,
			"airfreight":     numericFromDecimal(d.AirfreightPerKg),
			"arrival_date":   pgtype.Date{Time: d.ArrivalDate, Valid: true},
			"min_weight":     numericFromDecimal(d.MinWeight),
			"max_weight":     numericFromDecimal(d.MaxWeight),
		})
		if err != nil {
			return fmt.Errorf("insert destination: %w", outOfRange(err, "destination"))
		}
	}

	const qProduct = `
		INSERT INTO quote_product (quote_id, fish_id, weight_range, cut, grade, price_per_kg, quantity)
		VALUES (@quote_id, @fish_id, @weight_range, @cut, @grade, @price_per_kg, @quantity)`

	for _, p := range products {
		_, err := tx.Exec(ctx, qProduct, pgx.NamedArgs{
			"quote_id":     sub.ID,
			"fish_id":      p.fishID,
			"weight_range": p.WeightRange,
			"cut":          p.cutID,
			"grade":        p.gradeID,
			"price_per_kg": numericFromDecimal(p.PricePerKg),
			"quantity":     p.Quantity,
		})
		if err != nil {
			return fmt.Errorf("insert product: %w", outOfRange(err, "product"))
		}
	}
	return nil
}

func (r *pgQuoteRepo) GetSnapshot(ctx context.Context, id int64) (domain.QuoteSnapshot, error) {
	const qHeader = `
		SELECT
			q.id,
			COALESCE(v.name, ''),
			COALESCE(v.code, ''),
			COALESCE(v.country, ''),
			v.contact_email,
			COALESCE(v.is_email_enabled, FALSE),
			q.quote_valid_till,
			COALESCE(
				(SELECT string_agg(DISTINCT fs.common_name, ', ')
				 FROM quote_product qp
				 JOIN fish_species fs ON qp.fish_id = fs.id
				 WHERE qp.quote_id = q.id), 'N/A'
			),
			q.notes,
			q.price_negotiable,
			q.exclusive_offer,
			q.created_at
		FROM quote q
		LEFT JOIN vendors v ON q.vendor_id = v.id
		WHERE q.id = @id`

	var (
		s         domain.QuoteSnapshot
		email     pgtype.Text
		validTill pgtype.Date
	)
	err := r.db.QueryRow(ctx, qHeader, pgx.NamedArgs{"id": id}).Scan(
		&s.QuoteID, &s.VendorName, &s.VendorCode, &s.Country, &email, &s.EmailEnabled,
		&validTill, &s.FishType, &s.Notes, &s.PriceNegotiable, &s.ExclusiveOffer, &s.CreatedAt,
	)
	if err != nil {
		return domain.QuoteSnapshot{}, fmt.Errorf("repo.QuoteRepo.GetSnapshot: %w",
			notFound(err, "quote", strconv.FormatInt(id, 10)))
	}
	s.ContactEmail = email.String
	if validTill.Valid {
		t := validTill.Time
		s.ValidTill = &t
	}

	const qDests = `
		SELECT d.name, qd.airfreight_per_kg, qd.arrival_date, qd.min_weight, qd.max_weight
		FROM quote_destination qd
		JOIN dictionary d ON qd.destination_id = d.id
		WHERE qd.quote_id = @id
		ORDER BY qd.id`

	rows, err := r.db.Query(ctx, qDests, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.QuoteSnapshot{}, fmt.Errorf("repo.QuoteRepo.GetSnapshot: destinations: %w", err)
	}
	if s.Destinations, err = collect(rows, scanDestinationLine); err != nil {
		return domain.QuoteSnapshot{}, fmt.Errorf("repo.QuoteRepo.GetSnapshot: destinations: %w", err)
	}

	const qProducts = `
		SELECT fs.common_name, fc.name, fg.name, qp.weight_range, qp.price_per_kg, qp.quantity
		FROM quote_product qp
		JOIN fish_species fs ON qp.fish_id = fs.id
		JOIN fish_cut fc ON qp.cut = fc.id
		JOIN fish_grade fg ON qp.grade = fg.id
		WHERE qp.quote_id = @id
		ORDER BY qp.id`

	rows, err = r.db.Query(ctx, qProducts, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.QuoteSnapshot{}, fmt.Errorf("repo.QuoteRepo.GetSnapshot: products: %w", err)
	}
	if s.Products, err = collect(rows, scanProductLine); err != nil {
		return domain.QuoteSnapshot{}, fmt.Errorf("repo.QuoteRepo.GetSnapshot: products: %w", err)
	}

	return s, nil
}

func (r *pgQuoteRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quote WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.QuoteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QuoteRepo.Delete: %w", domain.NotFound("quote", strconv.FormatInt(id, 10)))
	}
	return nil
}

func scanDestinationLine(s scanner) (domain.DestinationLine, error) {
	var (
		d                      domain.DestinationLine
		airfreight, minW, maxW pgtype.Numeric
		arrival                pgtype.Date
	)
	if err := s.Scan(&d.Destination, &airfreight, &arrival, &minW, &maxW); err != nil {
		return domain.DestinationLine{}, err
	}
	d.AirfreightPerKg = decimalFromNumeric(airfreight)
	d.ArrivalDate = arrival.Time
	d.MinWeight = decimalFromNumeric(minW)
	d.MaxWeight = decimalFromNumeric(maxW)
	return d, nil
}

func scanProductLine(s scanner) (domain.ProductLine, error) {
	var (
		p     domain.ProductLine
		price pgtype.Numeric
	)
	if err := s.Scan(&p.FishType, &p.CutName, &p.GradeName, &p.WeightRange, &price, &p.Quantity); err != nil {
		return domain.ProductLine{}, err
	}
	p.PricePerKg = decimalFromNumeric(price)
	return p, nil
}
