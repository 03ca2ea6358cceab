package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/lib/pq"
)

const stateRowID = 1

var errStateRowMissing = errors.New("state row missing")

const createStateTableQuery = `
	CREATE TABLE IF NOT EXISTS tournament_state (
		id         SMALLINT PRIMARY KEY,
		document   JSONB NOT NULL,
		revision   BIGINT NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

type postgresDocumentStore struct {
	db *sql.DB
}

// NewPostgresDocumentStore хранит весь документ в одной строке jsonb.
func NewPostgresDocumentStore(ctx context.Context, db *sql.DB) (DocumentStore, error) {
	if _, err := db.ExecContext(ctx, createStateTableQuery); err != nil {
		return nil, fmt.Errorf("failed to ensure tournament_state table: %w", err)
	}
	return &postgresDocumentStore{db: db}, nil
}

func (r *postgresDocumentStore) Load(ctx context.Context) (*models.Document, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM tournament_state WHERE id = $1`, stateRowID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return decodeDocument(data)
}

func (r *postgresDocumentStore) Save(ctx context.Context, doc *models.Document) (err error) {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin state transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE tournament_state SET document = $1, revision = revision + 1, updated_at = NOW() WHERE id = $2`,
		data, stateRowID)
	if err != nil {
		return mapStateError(err)
	}
	err = checkAffectedRows(result, errStateRowMissing)
	if errors.Is(err, errStateRowMissing) {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tournament_state (id, document) VALUES ($1, $2)`,
			stateRowID, data)
		if err != nil {
			return mapStateError(err)
		}
		return nil
	}
	return err
}

func mapStateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation: строку вставил другой процесс
			return fmt.Errorf("concurrent state writer detected: %w", err)
		case "42P01": // undefined_table
			return fmt.Errorf("tournament_state table is missing: %w", err)
		}
	}
	return err
}
