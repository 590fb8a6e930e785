package pubsub_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	gpubsub "cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/notify/pubsub"
)

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	admin, err := gpubsub.NewClient(ctx, "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)
	_, err = admin.CreateTopic(ctx, "receiving-events")
	require.NoError(t, err)

	pub, err := pubsub.NewPublisher(ctx, "test-project", "receiving-events", "", zap.NewNop(), option.WithGRPCConn(conn))
	require.NoError(t, err)

	ev := domain.NotificationEvent{
		Kind:            domain.EventIncidentCreated,
		EntityID:        uuid.New(),
		AffectedUserIDs: []uuid.UUID{uuid.New()},
		Payload:         map[string]any{"incident_number": "INC-2026-000001"},
		OccurredAt:      time.Now().UTC(),
	}
	require.NoError(t, pub.Publish(ctx, ev))

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "incident.created", msgs[0].Attributes["kind"])
	assert.Equal(t, ev.EntityID.String(), msgs[0].Attributes["entity_id"])

	var got domain.NotificationEvent
	require.NoError(t, json.Unmarshal(msgs[0].Data, &got))
	assert.Equal(t, ev.EntityID, got.EntityID)
	assert.Equal(t, "INC-2026-000001", got.Payload["incident_number"])
}

func TestNewPublisher_RequiresTopic(t *testing.T) {
	_, err := pubsub.NewPublisher(context.Background(), "p", "", "", zap.NewNop())
	assert.Error(t, err)
}
