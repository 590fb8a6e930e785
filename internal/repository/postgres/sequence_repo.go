package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a SequenceRepository backed by the number_sequences table.
func NewSequenceRepo(db *sqlx.DB) port.SequenceRepository {
	return &sequenceRepo{db: db}
}

// Next increments in a single statement. Inside a transaction the row stays
// locked until commit, so concurrent issuers of the same key serialize.
func (r *sequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	var v int64
	err := conn(ctx, r.db).GetContext(ctx, &v,
		`INSERT INTO number_sequences (key, last_value, updated_at) VALUES ($1, 1, NOW())
		 ON CONFLICT (key) DO UPDATE
		 SET last_value = number_sequences.last_value + 1, updated_at = NOW()
		 RETURNING last_value`, key)
	if err != nil {
		return 0, fmt.Errorf("sequenceRepo.Next: %w", err)
	}
	return v, nil
}

func (r *sequenceRepo) Resync(ctx context.Context, key string, floor int64) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO number_sequences (key, last_value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE
		 SET last_value = GREATEST(number_sequences.last_value, EXCLUDED.last_value), updated_at = NOW()`,
		key, floor)
	if err != nil {
		return fmt.Errorf("sequenceRepo.Resync: %w", err)
	}
	return nil
}
