package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

func newAudit(number string) *domain.Audit {
	return &domain.Audit{ID: uuid.New(), AuditNumber: number, State: domain.AuditStateInProcess}
}

func TestStore_WithTransaction_RollsBackOnError(t *testing.T) {
	s := NewStore()
	repos := s.Repos()
	ctx := context.Background()
	failure := errors.New("abort")

	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repos.Audits.Create(ctx, newAudit("AUD-2026-000001")))
		_, _ = repos.Sequences.Next(ctx, "AUD-2026-")
		return failure
	})
	assert.ErrorIs(t, err, failure)

	_, total, err := repos.Audits.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	next, err := repos.Sequences.Next(ctx, "AUD-2026-")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next, "sequence increments roll back with the transaction")
}

func TestStore_WithTransaction_NestedJoinsOuter(t *testing.T) {
	s := NewStore()
	repos := s.Repos()
	ctx := context.Background()

	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repos.Audits.Create(ctx, newAudit("AUD-2026-000001")))
		// Would deadlock if the inner call tried to take the lock again.
		return s.WithTransaction(ctx, func(ctx context.Context) error {
			return repos.Audits.Create(ctx, newAudit("AUD-2026-000002"))
		})
	})
	require.NoError(t, err)

	_, total, _ := repos.Audits.List(ctx, domain.AuditFilter{})
	assert.Equal(t, 2, total)
}

func TestAuditRepo_UpdateState_OptimisticVersion(t *testing.T) {
	repos := NewStore().Repos()
	ctx := context.Background()
	a := newAudit("AUD-2026-000001")
	require.NoError(t, repos.Audits.Create(ctx, a))
	require.Equal(t, 1, a.Version)

	stale := *a
	a.State = domain.AuditStateFinalized
	require.NoError(t, repos.Audits.UpdateState(ctx, a, 1))
	assert.Equal(t, 2, a.Version)

	stale.State = domain.AuditStateCancelled
	assert.ErrorIs(t, repos.Audits.UpdateState(ctx, &stale, 1), domain.ErrConflict)

	got, err := repos.Audits.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuditStateFinalized, got.State)
}

func TestAuditRepo_DuplicateNumberAndMaxSequence(t *testing.T) {
	repos := NewStore().Repos()
	ctx := context.Background()

	require.NoError(t, repos.Audits.Create(ctx, newAudit("AUD-2026-000007")))
	require.NoError(t, repos.Audits.Create(ctx, newAudit("AUD-2026-000012")))
	require.NoError(t, repos.Audits.Create(ctx, newAudit("AUD-2025-000099")))
	assert.ErrorIs(t, repos.Audits.Create(ctx, newAudit("AUD-2026-000007")), domain.ErrDuplicateNumber)

	seq, err := repos.Audits.MaxSequence(ctx, "AUD-2026-")
	require.NoError(t, err)
	assert.Equal(t, int64(12), seq)
}

func TestSequenceRepo_ResyncNeverMovesBackwards(t *testing.T) {
	repos := NewStore().Repos()
	ctx := context.Background()

	require.NoError(t, repos.Sequences.Resync(ctx, "INC-2026-", 40))
	n, _ := repos.Sequences.Next(ctx, "INC-2026-")
	assert.Equal(t, int64(41), n)

	require.NoError(t, repos.Sequences.Resync(ctx, "INC-2026-", 3))
	n, _ = repos.Sequences.Next(ctx, "INC-2026-")
	assert.Equal(t, int64(42), n)
}

func TestOutboxRepo_ClaimBatchLease(t *testing.T) {
	s := NewStore()
	clock := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repos := s.Repos()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Outbox.Enqueue(ctx, &domain.OutboxEntry{ID: uuid.New(), Kind: domain.EventAuditClosed}))
		clock = clock.Add(time.Second)
	}

	batch, err := repos.Outbox.ClaimBatch(ctx, 2, time.Minute)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, domain.OutboxProcessing, batch[0].Status)
	assert.Equal(t, 1, batch[0].Attempts)

	// Only the unclaimed entry is due while the lease holds.
	batch, _ = repos.Outbox.ClaimBatch(ctx, 10, time.Minute)
	require.Len(t, batch, 1)
	require.NoError(t, repos.Outbox.MarkSent(ctx, batch[0].ID))

	clock = clock.Add(2 * time.Minute)
	batch, _ = repos.Outbox.ClaimBatch(ctx, 10, time.Minute)
	assert.Len(t, batch, 2, "expired leases are claimed again")
	assert.Equal(t, 2, batch[0].Attempts)
}

func TestOutboxRepo_FailedWaitsForNextAttempt(t *testing.T) {
	s := NewStore()
	clock := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repos := s.Repos()
	ctx := context.Background()

	e := &domain.OutboxEntry{ID: uuid.New(), Kind: domain.EventIncidentCreated}
	require.NoError(t, repos.Outbox.Enqueue(ctx, e))
	_, _ = repos.Outbox.ClaimBatch(ctx, 1, time.Minute)
	require.NoError(t, repos.Outbox.MarkFailed(ctx, e.ID, "smtp down", clock.Add(10*time.Second)))

	batch, _ := repos.Outbox.ClaimBatch(ctx, 1, time.Minute)
	assert.Empty(t, batch)

	clock = clock.Add(10 * time.Second)
	batch, _ = repos.Outbox.ClaimBatch(ctx, 1, time.Minute)
	require.Len(t, batch, 1)
	assert.Equal(t, "smtp down", batch[0].LastError)

	require.NoError(t, repos.Outbox.MarkDead(ctx, e.ID, "gave up"))
	clock = clock.Add(time.Hour)
	batch, _ = repos.Outbox.ClaimBatch(ctx, 1, time.Minute)
	assert.Empty(t, batch, "dead entries are never claimed")
}
