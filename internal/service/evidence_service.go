package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/config"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// EvidenceUploadInput is the DTO for attaching a file to an incident.
type EvidenceUploadInput struct {
	IncidentID uuid.UUID
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// EvidenceService manages photos and documents attached to incidents.
type EvidenceService interface {
	Upload(ctx context.Context, input EvidenceUploadInput) (*domain.Evidence, error)
	GetByID(ctx context.Context, evidenceID uuid.UUID) (*domain.Evidence, error)
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error)
	GetDownloadURL(ctx context.Context, evidenceID uuid.UUID) (string, error)
	Delete(ctx context.Context, evidenceID uuid.UUID) error
}

type evidenceService struct {
	repo      port.EvidenceRepository
	incidents port.IncidentRepository
	audits    port.AuditRepository
	storage   port.ObjectStorage
	cfg       *config.S3Config
	log       *zap.Logger
}

// NewEvidenceService creates a new EvidenceService implementation.
func NewEvidenceService(
	repo port.EvidenceRepository,
	incidents port.IncidentRepository,
	audits port.AuditRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *zap.Logger,
) EvidenceService {
	return &evidenceService{
		repo:      repo,
		incidents: incidents,
		audits:    audits,
		storage:   storage,
		cfg:       cfg,
		log:       log,
	}
}

func (s *evidenceService) Upload(ctx context.Context, input EvidenceUploadInput) (*domain.Evidence, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic bytes must agree with the extension.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if sniffed, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok || sniffed != fileType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	inc, err := s.incidents.GetByID(ctx, input.IncidentID)
	if err != nil {
		return nil, err
	}
	audit, err := s.audits.GetByID(ctx, inc.AuditID)
	if err != nil {
		return nil, err
	}
	if audit.State == domain.AuditStateCancelled {
		return nil, domain.ErrInvalidAudit
	}

	id := uuid.New()
	contentType := domain.AllowedFileTypes[fileType]
	ev := &domain.Evidence{
		ID:           id,
		IncidentID:   inc.ID,
		FileName:     id.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        fmt.Sprintf("audits/%s/incidents/%s/%s.%s", audit.ID, inc.ID, id, ext),
		ContentType:  contentType,
		Status:       domain.EvidenceStatusPending,
		UploadedBy:   input.UploadedBy,
	}

	log := s.log.With(zap.String("evidence_id", id.String()), zap.String("incident_number", inc.IncidentNumber))
	log.Info("uploading evidence", zap.String("file", input.Header.Filename), zap.Int64("size", input.Header.Size))

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating evidence metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      ev.S3Bucket,
		Key:         ev.S3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Error("evidence upload failed", zap.Error(err))
		if uErr := s.repo.UpdateStatus(ctx, ev.ID, domain.EvidenceStatusFailed); uErr != nil {
			log.Error("marking evidence failed", zap.Error(uErr))
		}
		return nil, domain.ErrUploadFailed
	}

	if err := s.repo.UpdateStatus(ctx, ev.ID, domain.EvidenceStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating evidence status: %w", err)
	}
	ev.Status = domain.EvidenceStatusUploaded
	return ev, nil
}

func (s *evidenceService) GetByID(ctx context.Context, evidenceID uuid.UUID) (*domain.Evidence, error) {
	return s.repo.GetByID(ctx, evidenceID)
}

func (s *evidenceService) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]domain.Evidence, error) {
	if _, err := s.incidents.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.repo.ListByIncident(ctx, incidentID)
}

func (s *evidenceService) GetDownloadURL(ctx context.Context, evidenceID uuid.UUID) (string, error) {
	ev, err := s.repo.GetByID(ctx, evidenceID)
	if err != nil {
		return "", err
	}
	if ev.Status != domain.EvidenceStatusUploaded {
		return "", fmt.Errorf("%w: evidence is %s", domain.ErrInvalidState, ev.Status)
	}
	return s.storage.GetPresignedURL(ctx, ev.S3Bucket, ev.S3Key, s.cfg.PresignExpiry)
}

func (s *evidenceService) Delete(ctx context.Context, evidenceID uuid.UUID) error {
	ev, err := s.repo.GetByID(ctx, evidenceID)
	if err != nil {
		return err
	}
	if ev.Status == domain.EvidenceStatusUploaded {
		if err := s.storage.Delete(ctx, ev.S3Bucket, ev.S3Key); err != nil {
			s.log.Error("deleting evidence object", zap.String("key", ev.S3Key), zap.Error(err))
			return fmt.Errorf("deleting from storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, evidenceID)
}
