package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, a *domain.Audit) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Version = 1

	// ON CONFLICT keeps the surrounding transaction usable so the caller can retry.
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO audits (
			id, audit_number, supplier_id, purchase_order_ref, audit_date, state, notes,
			created_by, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (audit_number) DO NOTHING`,
		a.ID, a.AuditNumber, a.SupplierID, a.PurchaseOrderRef, a.AuditDate, a.State, a.Notes,
		a.CreatedBy, a.Version, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDuplicateNumber
	}
	return nil
}

func (r *auditRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Audit, error) {
	return r.get(ctx, "SELECT * FROM audits WHERE id = $1", id)
}

func (r *auditRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Audit, error) {
	return r.get(ctx, "SELECT * FROM audits WHERE id = $1 FOR UPDATE", id)
}

func (r *auditRepo) get(ctx context.Context, query string, id uuid.UUID) (*domain.Audit, error) {
	var a domain.Audit
	if err := conn(ctx, r.db).GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAuditNotFound
		}
		return nil, fmt.Errorf("auditRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *auditRepo) List(ctx context.Context, f domain.AuditFilter) ([]domain.Audit, int, error) {
	var where []string
	var args []any
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.State != nil {
		add("state = $%d", *f.State)
	}
	if f.SupplierID != nil {
		add("supplier_id = $%d", *f.SupplierID)
	}
	if f.CreatedBy != nil {
		add("created_by = $%d", *f.CreatedBy)
	}
	if f.From != nil {
		add("audit_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("audit_date <= $%d", *f.To)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM audits"+cond, args...); err != nil {
		return nil, 0, fmt.Errorf("auditRepo.List count: %w", err)
	}

	var audits []domain.Audit
	n := len(args)
	err := conn(ctx, r.db).SelectContext(ctx, &audits,
		fmt.Sprintf("SELECT * FROM audits%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", cond, n+1, n+2),
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.List: %w", err)
	}
	return audits, total, nil
}

func (r *auditRepo) UpdateState(ctx context.Context, a *domain.Audit, expectedVersion int) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE audits SET
			state = $1, finalized_at = $2, closed_at = $3, cancelled_at = $4, cancel_reason = $5,
			version = version + 1, updated_at = $6
		 WHERE id = $7 AND version = $8`,
		a.State, a.FinalizedAt, a.ClosedAt, a.CancelledAt, a.CancelReason,
		a.UpdatedAt, a.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("auditRepo.UpdateState: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}
	a.Version = expectedVersion + 1
	return nil
}

func (r *auditRepo) MaxSequence(ctx context.Context, prefix string) (int64, error) {
	var seq int64
	err := conn(ctx, r.db).GetContext(ctx, &seq,
		`SELECT COALESCE(MAX(CAST(substring(audit_number FROM length($1) + 1) AS BIGINT)), 0)
		 FROM audits WHERE audit_number LIKE $1 || '%'`, prefix)
	if err != nil {
		return 0, fmt.Errorf("auditRepo.MaxSequence: %w", err)
	}
	return seq, nil
}
