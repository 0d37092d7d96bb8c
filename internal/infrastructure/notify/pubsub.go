package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	appnotify "github.com/masonbass/retail-api/internal/application/notify"
)

var _ appnotify.Notifier = (*PubSubNotifier)(nil)

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type topicPublisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) publishResult
}

type gcpPublisher struct {
	*pubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *pubsub.Message) publishResult {
	return p.Publisher.Publish(ctx, msg)
}

// PubSubNotifier publica cada evento como JSON en un tópico de Google Cloud Pub/Sub.
type PubSubNotifier struct {
	client    *pubsub.Client
	publisher topicPublisher
	stop      func()
}

// NewPubSubNotifier crea el cliente Pub/Sub v2 y el publisher del tópico (ID o nombre completo).
func NewPubSubNotifier(ctx context.Context, projectID, topic string) (*PubSubNotifier, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errors.New("pubsub: project id is required")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("pubsub: topic is required")
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}
	pub := client.Publisher(topicResourceName(projectID, topic))
	return &PubSubNotifier{
		client:    client,
		publisher: &gcpPublisher{Publisher: pub},
		stop:      pub.Stop,
	}, nil
}

func topicResourceName(projectID, topic string) string {
	t := strings.TrimSpace(topic)
	if strings.HasPrefix(t, "projects/") && strings.Contains(t, "/topics/") {
		return t
	}
	return fmt.Sprintf("projects/%s/topics/%s", strings.TrimSpace(projectID), t)
}

type eventPayload struct {
	Type       string            `json:"type"`
	Subject    string            `json:"subject"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Name identificador para logs.
func (p *PubSubNotifier) Name() string { return "pubsub" }

// Notify publica el evento y espera la confirmación del servidor.
func (p *PubSubNotifier) Notify(ctx context.Context, ev appnotify.Event) error {
	data, err := json.Marshal(eventPayload{
		Type:       ev.Type,
		Subject:    ev.Subject,
		Message:    ev.Message,
		Attributes: ev.Attributes,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("pubsub: serializar evento: %w", err)
	}

	attrs := map[string]string{"event_type": ev.Type, "subject": ev.Subject}
	for k, v := range ev.Attributes {
		if _, taken := attrs[k]; !taken {
			attrs[k] = v
		}
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs})
	if result == nil {
		return errors.New("pubsub: publisher returned nil result")
	}
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("pubsub: publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close vacía los mensajes pendientes y libera el cliente.
func (p *PubSubNotifier) Close() error {
	if p == nil {
		return nil
	}
	if p.stop != nil {
		p.stop()
	}
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
