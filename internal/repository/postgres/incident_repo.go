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

type incidentRepo struct {
	db *sqlx.DB
}

// NewIncidentRepo creates a new PostgreSQL-backed IncidentRepository.
func NewIncidentRepo(db *sqlx.DB) port.IncidentRepository {
	return &incidentRepo{db: db}
}

func (r *incidentRepo) Create(ctx context.Context, inc *domain.Incident) error {
	inc.UpdatedAt = time.Now().UTC()
	if inc.DetectedAt.IsZero() {
		inc.DetectedAt = inc.UpdatedAt
	}
	inc.Version = 1

	result, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO incidents (
			id, incident_number, audit_id, line_item_id, product_id, type, priority,
			description, state, assignee_id, reporter_id, detected_at, resolved_at,
			corrective_action, resolution_notes, version, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (incident_number) DO NOTHING`,
		inc.ID, inc.IncidentNumber, inc.AuditID, inc.LineItemID, inc.ProductID, inc.Type, inc.Priority,
		inc.Description, inc.State, inc.AssigneeID, inc.ReporterID, inc.DetectedAt, inc.ResolvedAt,
		inc.CorrectiveAction, inc.ResolutionNotes, inc.Version, inc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("incidentRepo.Create: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDuplicateNumber
	}
	return nil
}

func (r *incidentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return r.get(ctx, "SELECT * FROM incidents WHERE id = $1", id)
}

func (r *incidentRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return r.get(ctx, "SELECT * FROM incidents WHERE id = $1 FOR UPDATE", id)
}

func (r *incidentRepo) get(ctx context.Context, query string, id uuid.UUID) (*domain.Incident, error) {
	var inc domain.Incident
	if err := conn(ctx, r.db).GetContext(ctx, &inc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("incidentRepo.GetByID: %w", err)
	}
	return &inc, nil
}

func (r *incidentRepo) ListByAudit(ctx context.Context, auditID uuid.UUID) ([]domain.Incident, error) {
	query := "SELECT * FROM incidents WHERE audit_id = $1 ORDER BY detected_at DESC"
	if inTx(ctx) {
		query += " FOR SHARE"
	}
	var incidents []domain.Incident
	if err := conn(ctx, r.db).SelectContext(ctx, &incidents, query, auditID); err != nil {
		return nil, fmt.Errorf("incidentRepo.ListByAudit: %w", err)
	}
	return incidents, nil
}

func (r *incidentRepo) List(ctx context.Context, f domain.IncidentFilter) ([]domain.Incident, int, error) {
	var where []string
	var args []any
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.AuditID != nil {
		add("audit_id = $%d", *f.AuditID)
	}
	if f.State != nil {
		add("state = $%d", *f.State)
	}
	if f.AssigneeID != nil {
		add("assignee_id = $%d", *f.AssigneeID)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM incidents"+cond, args...); err != nil {
		return nil, 0, fmt.Errorf("incidentRepo.List count: %w", err)
	}

	var incidents []domain.Incident
	n := len(args)
	err := conn(ctx, r.db).SelectContext(ctx, &incidents,
		fmt.Sprintf("SELECT * FROM incidents%s ORDER BY detected_at DESC LIMIT $%d OFFSET $%d", cond, n+1, n+2),
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("incidentRepo.List: %w", err)
	}
	return incidents, total, nil
}

func (r *incidentRepo) Update(ctx context.Context, inc *domain.Incident, expectedVersion int) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE incidents SET
			state = $1, assignee_id = $2, resolved_at = $3, corrective_action = $4,
			resolution_notes = $5, priority = $6, version = version + 1, updated_at = $7
		 WHERE id = $8 AND version = $9`,
		inc.State, inc.AssigneeID, inc.ResolvedAt, inc.CorrectiveAction,
		inc.ResolutionNotes, inc.Priority, inc.UpdatedAt, inc.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("incidentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}
	inc.Version = expectedVersion + 1
	return nil
}

func (r *incidentRepo) MaxSequence(ctx context.Context, prefix string) (int64, error) {
	var seq int64
	err := conn(ctx, r.db).GetContext(ctx, &seq,
		`SELECT COALESCE(MAX(CAST(substring(incident_number FROM length($1) + 1) AS BIGINT)), 0)
		 FROM incidents WHERE incident_number LIKE $1 || '%'`, prefix)
	if err != nil {
		return 0, fmt.Errorf("incidentRepo.MaxSequence: %w", err)
	}
	return seq, nil
}

type commentRepo struct {
	db *sqlx.DB
}

// NewCommentRepo creates a new PostgreSQL-backed CommentRepository.
func NewCommentRepo(db *sqlx.DB) port.CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *domain.IncidentComment) error {
	c.CreatedAt = time.Now().UTC()
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO incident_comments (id, incident_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.IncidentID, c.AuthorID, c.Body, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("commentRepo.Create: %w", err)
	}
	return nil
}

func (r *commentRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.IncidentComment, error) {
	var comments []domain.IncidentComment
	err := conn(ctx, r.db).SelectContext(ctx, &comments,
		"SELECT * FROM incident_comments WHERE incident_id = $1 ORDER BY created_at DESC", incidentID)
	if err != nil {
		return nil, fmt.Errorf("commentRepo.ListByIncident: %w", err)
	}
	return comments, nil
}
