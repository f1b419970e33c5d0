package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"emi-engine/domain"
)

// LoanRepositorySQLite persists calculations in a SQLite database.
type LoanRepositorySQLite struct {
	db *sql.DB
}

// NewLoanRepositorySQLite opens (or creates) the database at path.
func NewLoanRepositorySQLite(path string) (*LoanRepositorySQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &LoanRepositorySQLite{db: db}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

func (r *LoanRepositorySQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		input TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at DESC);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Save inserts the record; input and result are stored as JSON.
func (r *LoanRepositorySQLite) Save(ctx context.Context, record domain.CalculationRecord) error {
	if record.ID == "" {
		return fmt.Errorf("calculation ID is required")
	}

	inputJSON, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO calculations (id, mode, input, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.Input.Mode, string(inputJSON), string(resultJSON), record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

func (r *LoanRepositorySQLite) List(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, input, result, created_at
		FROM calculations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var records []domain.CalculationRecord
	for rows.Next() {
		var (
			rec                   domain.CalculationRecord
			inputJSON, resultJSON string
		)
		if err := rows.Scan(&rec.ID, &inputJSON, &resultJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		if err := json.Unmarshal([]byte(inputJSON), &rec.Input); err != nil {
			return nil, fmt.Errorf("failed to decode input of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to decode result of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *LoanRepositorySQLite) Close() error {
	return r.db.Close()
}
