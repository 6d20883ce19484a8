package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapsConsultationsTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO consultations (id, merchant, intent, question, sections, narrative, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"consult-001", "ABC12345", "revisit_rate_analysis",
		"재방문율이 낮은 것 같은데 원인이 뭘까요?", `[]`, "", time.Now(),
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM consultations WHERE id = ?", "consult-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_DuplicateIDRejected(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	insert := `INSERT INTO consultations (id, merchant, intent) VALUES (?, ?, ?)`
	_, err = db.Exec(insert, "consult-001", "ABC12345", "industry_marketing")
	require.NoError(t, err)

	_, err = db.Exec(insert, "consult-001", "ABC12345", "industry_marketing")
	assert.Error(t, err)
}
