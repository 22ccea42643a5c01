package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// EmailLogRepo records notification attempts.
type EmailLogRepo interface {
	// Record inserts an entry and returns it with the DB-generated id and
	// sent_at populated.
	Record(ctx context.Context, entry domain.EmailLogEntry) (domain.EmailLogEntry, error)

	// ListByQuote returns the entries for a quote, oldest first.
	ListByQuote(ctx context.Context, quoteID int64) ([]domain.EmailLogEntry, error)
}

type pgEmailLogRepo struct {
	db db
}

// NewEmailLogRepo constructs an EmailLogRepo backed by the provided db connection.
func NewEmailLogRepo(db db) EmailLogRepo {
	return &pgEmailLogRepo{db: db}
}

func (r *pgEmailLogRepo) Record(ctx context.Context, entry domain.EmailLogEntry) (domain.EmailLogEntry, error) {
	const q = `
		INSERT INTO email_log (quote_id, kind, vendor_email, status, message)
		VALUES (@quote_id, @kind, @recipient, @status, @message)
		RETURNING id, quote_id, kind, vendor_email, status, message, sent_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"quote_id":  entry.QuoteID,
		"kind":      string(entry.Kind),
		"recipient": entry.Recipient,
		"status":    entry.Status,
		"message":   entry.Message,
	})
	got, err := scanEmailLog(row)
	if err != nil {
		return domain.EmailLogEntry{}, fmt.Errorf("repo.EmailLogRepo.Record: %w", err)
	}
	return got, nil
}

func (r *pgEmailLogRepo) ListByQuote(ctx context.Context, quoteID int64) ([]domain.EmailLogEntry, error) {
	const q = `
		SELECT id, quote_id, kind, vendor_email, status, message, sent_at
		FROM email_log
		WHERE quote_id = @quote_id
		ORDER BY sent_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"quote_id": quoteID})
	if err != nil {
		return nil, fmt.Errorf("repo.EmailLogRepo.ListByQuote: %w", err)
	}
	entries, err := collect(rows, scanEmailLog)
	if err != nil {
		return nil, fmt.Errorf("repo.EmailLogRepo.ListByQuote: %w", err)
	}
	return entries, nil
}

func scanEmailLog(s scanner) (domain.EmailLogEntry, error) {
	var (
		e    domain.EmailLogEntry
		id   pgtype.UUID
		kind string
	)
	if err := s.Scan(&id, &e.QuoteID, &kind, &e.Recipient, &e.Status, &e.Message, &e.SentAt); err != nil {
		return domain.EmailLogEntry{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.Kind = domain.NotificationKind(kind)
	return e, nil
}
