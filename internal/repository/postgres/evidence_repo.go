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

type evidenceRepo struct {
	db *sqlx.DB
}

// NewEvidenceRepo creates a new PostgreSQL-backed EvidenceRepository.
func NewEvidenceRepo(db *sqlx.DB) port.EvidenceRepository {
	return &evidenceRepo{db: db}
}

func (r *evidenceRepo) Create(ctx context.Context, ev *domain.Evidence) error {
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO incident_evidence
			(id, incident_id, uploaded_by, file_name, original_name, file_type, file_size,
			 s3_bucket, s3_key, content_type, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		ev.ID, ev.IncidentID, ev.UploadedBy, ev.FileName, ev.OriginalName,
		ev.FileType, ev.FileSize, ev.S3Bucket, ev.S3Key, ev.ContentType,
		ev.Status, ev.CreatedAt, ev.UpdatedAt)
	if err != nil {
		return fmt.Errorf("evidenceRepo.Create: %w", err)
	}
	return nil
}

func (r *evidenceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error) {
	var ev domain.Evidence
	err := conn(ctx, r.db).GetContext(ctx, &ev, "SELECT * FROM incident_evidence WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEvidenceNotFound
		}
		return nil, fmt.Errorf("evidenceRepo.GetByID: %w", err)
	}
	return &ev, nil
}

func (r *evidenceRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error) {
	var items []domain.Evidence
	err := conn(ctx, r.db).SelectContext(ctx, &items,
		`SELECT * FROM incident_evidence WHERE incident_id = $1 AND status = $2 ORDER BY created_at DESC`,
		incidentID, domain.EvidenceStatusUploaded)
	if err != nil {
		return nil, fmt.Errorf("evidenceRepo.ListByIncident: %w", err)
	}
	return items, nil
}

func (r *evidenceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EvidenceStatus) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE incident_evidence SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("evidenceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEvidenceNotFound
	}
	return nil
}

func (r *evidenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM incident_evidence WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("evidenceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEvidenceNotFound
	}
	return nil
}
