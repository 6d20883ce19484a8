package archive

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/sb-tools/merchant-lens/pkg/models/store"
	"github.com/sb-tools/merchant-lens/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	return db
}

func setupFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: store,
	}
}

func record(id, merchant string, createdAt time.Time) store.ConsultationRecord {
	return store.ConsultationRecord{
		ID:           id,
		MerchantID:   merchant,
		Intent:       "revisit_rate_analysis",
		Question:     "재방문율이 낮은 것 같은데 원인이 뭘까요?",
		SectionsJSON: `[{"title":"가맹점 기본 정보"}]`,
		Narrative:    "요약",
		CreatedAt:    createdAt,
	}
}

func TestArchiveStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - add and read back", func(t *testing.T) {
		rec := record("c1", "ABC12345", time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC))

		err := f.store.Add(ctx, rec)
		require.NoError(t, err)

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM consultations WHERE merchant = ?", "ABC12345").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("error - duplicate id", func(t *testing.T) {
		rec := record("dup", "DEF67890", time.Now().UTC())

		err := f.store.Add(ctx, rec)
		require.NoError(t, err)

		err = f.store.Add(ctx, rec)
		assert.Error(t, err)
	})
}

func TestArchiveStore_ListByMerchant(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"c1", "c2", "c3"} {
		rec := record(id, "ABC12345", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, f.store.Add(ctx, rec))
	}
	require.NoError(t, f.store.Add(ctx, record("other", "XYZ99999", base)))

	t.Run("success - newest first, scoped to merchant", func(t *testing.T) {
		records, err := f.store.ListByMerchant(ctx, "ABC12345", 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "c3", records[0].ID)
		assert.Equal(t, "c1", records[2].ID)
		for _, r := range records {
			assert.Equal(t, "ABC12345", r.MerchantID)
		}
	})

	t.Run("success - limit applies", func(t *testing.T) {
		records, err := f.store.ListByMerchant(ctx, "ABC12345", 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "c3", records[0].ID)
	})

	t.Run("success - unknown merchant is empty", func(t *testing.T) {
		records, err := f.store.ListByMerchant(ctx, "NOPE0000", 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("error - missing merchant id", func(t *testing.T) {
		_, err := f.store.ListByMerchant(ctx, "", 10)
		assert.Error(t, err)
	})
}

func TestArchiveStore_Add_Transaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("rollback discards the insert", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		rec := record("tx-rollback", "TXA11111", time.Now().UTC())
		err = f.store.Add(duckdb.WithTransaction(ctx, tx), rec)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM consultations WHERE merchant = ?", "TXA11111").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("commit persists the insert", func(t *testing.T) {
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		rec := record("tx-commit", "TXB22222", time.Now().UTC())
		err = f.store.Add(duckdb.WithTransaction(ctx, tx), rec)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		var count int
		err = f.db.QueryRow("SELECT COUNT(*) FROM consultations WHERE merchant = ?", "TXB22222").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestArchiveStore_ListByMerchant_QueryShape(t *testing.T) {
	// Given: a sqlmock DB returning one archived consultation
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "merchant", "intent", "question", "sections", "narrative", "created_at"}
	created := time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols).
		AddRow("c9", "ABC12345", "lunch_turnover_strategy", "점심 회전율?", `[]`, nil, created)

	query := regexp.QuoteMeta(`
		SELECT id, merchant, intent, question, sections, narrative, created_at
		FROM consultations
		WHERE merchant = ?
		ORDER BY created_at DESC
		LIMIT ?
	`)
	mock.ExpectQuery(query).
		WithArgs("ABC12345", defaultListLimit).
		WillReturnRows(rows)

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	// When: listing with a non-positive limit
	records, err := s.ListByMerchant(context.Background(), "ABC12345", 0)

	// Then: the default limit is used and null columns scan to empty strings
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Narrative != "" {
		t.Errorf("expected empty narrative, got %q", records[0].Narrative)
	}
	if records[0].Intent != "lunch_turnover_strategy" {
		t.Errorf("unexpected intent: %s", records[0].Intent)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
