package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// NumberingConfig shapes generated document numbers.
type NumberingConfig struct {
	AuditPrefix    string
	IncidentPrefix string
	Padding        int
}

// AuditLedger owns audit and incident numbering and the audit read paths.
//
// Numbers come from a per-period counter incremented atomically at the
// persistence boundary and are inserted under a unique constraint. A
// collision (numbers written by some other path) resyncs the counter from
// the highest issued number and retries exactly once.
type AuditLedger interface {
	NextAuditNumber(ctx context.Context) (string, error)
	NextIncidentNumber(ctx context.Context) (string, error)
	RegisterAudit(ctx context.Context, audit *domain.Audit) error
	RegisterIncident(ctx context.Context, incident *domain.Incident) error
	Find(ctx context.Context, auditID uuid.UUID) (*domain.Audit, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error)
}

type auditLedger struct {
	txm       port.TxManager
	seq       port.SequenceRepository
	audits    port.AuditRepository
	incidents port.IncidentRepository
	cfg       NumberingConfig
	log       *zap.Logger
	now       func() time.Time
}

// NewAuditLedger creates a new AuditLedger.
func NewAuditLedger(
	txm port.TxManager,
	seq port.SequenceRepository,
	audits port.AuditRepository,
	incidents port.IncidentRepository,
	cfg NumberingConfig,
	log *zap.Logger,
) AuditLedger {
	if cfg.Padding <= 0 {
		cfg.Padding = 6
	}
	return &auditLedger{
		txm:       txm,
		seq:       seq,
		audits:    audits,
		incidents: incidents,
		cfg:       cfg,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// periodPrefix returns e.g. "AUD-2026-". It doubles as the sequence key.
func (l *auditLedger) periodPrefix(prefix string) string {
	return fmt.Sprintf("%s-%d-", prefix, l.now().Year())
}

func (l *auditLedger) format(prefix string, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, l.cfg.Padding, n)
}

func (l *auditLedger) next(ctx context.Context, prefix string) (string, error) {
	n, err := l.seq.Next(ctx, prefix)
	if err != nil {
		return "", err
	}
	return l.format(prefix, n), nil
}

func (l *auditLedger) NextAuditNumber(ctx context.Context) (string, error) {
	return l.next(ctx, l.periodPrefix(l.cfg.AuditPrefix))
}

func (l *auditLedger) NextIncidentNumber(ctx context.Context) (string, error) {
	return l.next(ctx, l.periodPrefix(l.cfg.IncidentPrefix))
}

func (l *auditLedger) RegisterAudit(ctx context.Context, audit *domain.Audit) error {
	return l.issue(ctx, l.periodPrefix(l.cfg.AuditPrefix), l.audits.MaxSequence, func(ctx context.Context, number string) error {
		audit.AuditNumber = number
		return l.audits.Create(ctx, audit)
	})
}

func (l *auditLedger) RegisterIncident(ctx context.Context, incident *domain.Incident) error {
	return l.issue(ctx, l.periodPrefix(l.cfg.IncidentPrefix), l.incidents.MaxSequence, func(ctx context.Context, number string) error {
		incident.IncidentNumber = number
		return l.incidents.Create(ctx, incident)
	})
}

func (l *auditLedger) issue(
	ctx context.Context,
	prefix string,
	maxIssued func(ctx context.Context, prefix string) (int64, error),
	insert func(ctx context.Context, number string) error,
) error {
	return l.txm.WithTransaction(ctx, func(ctx context.Context) error {
		for attempt := 1; ; attempt++ {
			number, err := l.next(ctx, prefix)
			if err != nil {
				return err
			}
			err = insert(ctx, number)
			if err == nil {
				return nil
			}
			if !errors.Is(err, domain.ErrDuplicateNumber) || attempt == 2 {
				return err
			}

			l.log.Warn("number collision, resyncing sequence", zap.String("number", number))
			floor, err := maxIssued(ctx, prefix)
			if err != nil {
				return err
			}
			if err := l.seq.Resync(ctx, prefix, floor); err != nil {
				return err
			}
		}
	})
}

func (l *auditLedger) Find(ctx context.Context, auditID uuid.UUID) (*domain.Audit, error) {
	return l.audits.GetByID(ctx, auditID)
}

func (l *auditLedger) List(ctx context.Context, filter domain.AuditFilter) ([]domain.Audit, int, error) {
	return l.audits.List(ctx, filter)
}
