package archive

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sb-tools/merchant-lens/pkg/models/store"
	"github.com/sb-tools/merchant-lens/pkg/store/duckdb"
)

const defaultListLimit = 20

// Store is the append-only archive of issued consultations. The pipeline
// writes to it after each consult; nothing in the derivation path reads it.
type Store interface {
	Add(ctx context.Context, record store.ConsultationRecord) error
	ListByMerchant(ctx context.Context, merchantID string, limit int) ([]store.ConsultationRecord, error)
}

type archiveStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &archiveStore{
		db: db,
	}, nil
}

func (a *archiveStore) Add(ctx context.Context, record store.ConsultationRecord) error {
	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO consultations (
			id, merchant, intent, question, sections, narrative, created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?
		)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = a.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		record.ID,
		record.MerchantID,
		record.Intent,
		record.Question,
		record.SectionsJSON,
		record.Narrative,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}

	return nil
}

func (a *archiveStore) ListByMerchant(
	ctx context.Context,
	merchantID string,
	limit int,
) ([]store.ConsultationRecord, error) {
	if merchantID == "" {
		return nil, fmt.Errorf("merchant id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, merchant, intent, question, sections, narrative, created_at
		FROM consultations
		WHERE merchant = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := a.db.QueryContext(ctx, query, merchantID, limit)
	if err != nil {
		return nil, fmt.Errorf("query consultations: %w", err)
	}
	defer rows.Close()

	return scanConsultationRows(rows)
}

func scanConsultationRows(rows *sql.Rows) ([]store.ConsultationRecord, error) {
	records := make([]store.ConsultationRecord, 0)
	for rows.Next() {
		var (
			r                   store.ConsultationRecord
			question, narrative sql.NullString
			sections            sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.MerchantID, &r.Intent, &question, &sections, &narrative, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Question = question.String
		r.SectionsJSON = sections.String
		r.Narrative = narrative.String
		records = append(records, r)
	}
	return records, rows.Err()
}
