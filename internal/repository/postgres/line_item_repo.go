package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

type lineItemRepo struct {
	db *sqlx.DB
}

// NewLineItemRepo creates a new PostgreSQL-backed LineItemRepository.
func NewLineItemRepo(db *sqlx.DB) port.LineItemRepository {
	return &lineItemRepo{db: db}
}

const lineItemColumns = `id, audit_id, product_id, expected_qty, received_qty, condition, notes,
	registered_by, registered_at, updated_at`

func (r *lineItemRepo) Create(ctx context.Context, item *domain.LineItem) error {
	now := time.Now().UTC()
	if item.RegisteredAt.IsZero() {
		item.RegisteredAt = now
	}
	item.UpdatedAt = now

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO audit_line_items (`+lineItemColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.AuditID, item.ProductID, item.ExpectedQty, item.ReceivedQty, item.Condition,
		item.Notes, item.RegisteredBy, item.RegisteredAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("lineItemRepo.Create: %w", err)
	}
	return nil
}

func (r *lineItemRepo) GetByID(ctx context.Context, auditID, itemID uuid.UUID) (*domain.LineItem, error) {
	var item domain.LineItem
	err := conn(ctx, r.db).GetContext(ctx, &item,
		"SELECT "+lineItemColumns+" FROM audit_line_items WHERE id = $1 AND audit_id = $2", itemID, auditID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLineItemNotFound
		}
		return nil, fmt.Errorf("lineItemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *lineItemRepo) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := conn(ctx, r.db).SelectContext(ctx, &items,
		"SELECT "+lineItemColumns+" FROM audit_line_items WHERE audit_id = $1 ORDER BY registered_at DESC", auditID)
	if err != nil {
		return nil, fmt.Errorf("lineItemRepo.ListByAudit: %w", err)
	}
	return items, nil
}

func (r *lineItemRepo) CountByAudit(ctx context.Context, auditID uuid.UUID) (int, error) {
	var n int
	err := conn(ctx, r.db).GetContext(ctx, &n,
		"SELECT COUNT(*) FROM audit_line_items WHERE audit_id = $1", auditID)
	if err != nil {
		return 0, fmt.Errorf("lineItemRepo.CountByAudit: %w", err)
	}
	return n, nil
}

func (r *lineItemRepo) Update(ctx context.Context, item *domain.LineItem) error {
	item.UpdatedAt = time.Now().UTC()
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE audit_line_items SET
			expected_qty = $1, received_qty = $2, condition = $3, notes = $4, updated_at = $5
		 WHERE id = $6 AND audit_id = $7`,
		item.ExpectedQty, item.ReceivedQty, item.Condition, item.Notes, item.UpdatedAt,
		item.ID, item.AuditID)
	if err != nil {
		return fmt.Errorf("lineItemRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLineItemNotFound
	}
	return nil
}

func (r *lineItemRepo) Delete(ctx context.Context, auditID, itemID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"DELETE FROM audit_line_items WHERE id = $1 AND audit_id = $2", itemID, auditID)
	if err != nil {
		return fmt.Errorf("lineItemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLineItemNotFound
	}
	return nil
}
