package services

import (
	"context"
	"encoding/json"

	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/models"
	"github.com/abrezinsky/derbybracket/pkg/webhook"
)

// WebhookURLSource provides the current webhook target
type WebhookURLSource interface {
	GetWebhookURL(ctx context.Context) (string, error)
}

// WebhookPublisher forwards committed events to an external URL. The target
// is looked up on every delivery so settings changes apply immediately.
type WebhookPublisher struct {
	log    logger.Logger
	client webhook.Client
	urls   WebhookURLSource
}

// NewWebhookPublisher creates a new WebhookPublisher
func NewWebhookPublisher(log logger.Logger, client webhook.Client, urls WebhookURLSource) *WebhookPublisher {
	return &WebhookPublisher{log: log, client: client, urls: urls}
}

// Publish implements Publisher. Delivery failures are logged; the mutation
// that produced the events has already been committed.
func (p *WebhookPublisher) Publish(ctx context.Context, tournamentID string, events []models.Event) {
	if p.urls != nil {
		url, err := p.urls.GetWebhookURL(ctx)
		if err != nil {
			p.log.Warn("Failed to read webhook URL", "error", err)
			return
		}
		p.client.SetURL(url)
	}
	if p.client.URL() == "" || len(events) == 0 {
		return
	}

	n := webhook.Notification{TournamentID: tournamentID, Events: ToWebhookEvents(events)}
	if err := p.client.Send(ctx, n); err != nil {
		p.log.Warn("Webhook delivery failed", "tournament_id", tournamentID, "events", len(events), "error", err)
		return
	}
	p.log.Debug("Webhook delivered", "tournament_id", tournamentID, "events", len(events))
}

// ToWebhookEvents converts recorded events to their wire form
func ToWebhookEvents(events []models.Event) []webhook.Event {
	out := make([]webhook.Event, len(events))
	for i, e := range events {
		out[i] = webhook.Event{
			Type:  e.Type,
			Round: e.Round,
			Game:  e.Game,
			Team:  e.Team,
			Score: e.Score,
			At:    e.CreatedAt,
		}
		if e.Payload != "" {
			out[i].Data = json.RawMessage(e.Payload)
		}
	}
	return out
}
