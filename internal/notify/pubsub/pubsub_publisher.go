package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/port"
)

// Publisher sends events as JSON messages to a Pub/Sub topic.
type Publisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	log    *zap.Logger
}

var _ port.NotificationPublisher = (*Publisher)(nil)

// NewPublisher creates a Pub/Sub client for projectID and binds it to topic.
// Application Default Credentials are used unless credentialsJSON is set.
func NewPublisher(ctx context.Context, projectID, topic, credentialsJSON string, log *zap.Logger, opts ...option.ClientOption) (*Publisher, error) {
	if projectID == "" {
		return nil, errors.New("pubsub project id is required")
	}
	if topic == "" {
		return nil, errors.New("pubsub topic is required")
	}
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}
	log.Info("pubsub publisher ready", zap.String("project_id", projectID), zap.String("topic", topic))
	return &Publisher{client: client, topic: client.Topic(topic), log: log}, nil
}

// Publish blocks until the server acknowledges the message.
func (p *Publisher) Publish(ctx context.Context, ev domain.NotificationEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	res := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"kind":      string(ev.Kind),
			"entity_id": ev.EntityID.String(),
		},
	})
	id, err := res.Get(ctx)
	if err != nil {
		return fmt.Errorf("pubsub publish: %w", err)
	}
	p.log.Debug("event published", zap.String("kind", string(ev.Kind)), zap.String("message_id", id))
	return nil
}

// Close flushes pending messages and releases the client.
func (p *Publisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
