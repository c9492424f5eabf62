package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gyaneshwarpardhi/trackwire/internal/builder"
	"github.com/gyaneshwarpardhi/trackwire/internal/config"
	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/metrics"
	"github.com/gyaneshwarpardhi/trackwire/internal/session"
	"github.com/gyaneshwarpardhi/trackwire/internal/transport"
	"github.com/gyaneshwarpardhi/trackwire/internal/wire"
)

// Request is one event as submitted by application code.
type Request struct {
	MessageType        event.MessageType        `json:"message_type"`
	Name               string                   `json:"name"`
	EventType          event.EventType          `json:"event_type"`
	Attributes         map[string]interface{}   `json:"attributes"`
	CustomFlags        map[string]interface{}   `json:"custom_flags"`
	ShoppingCart       *event.ShoppingCart      `json:"shopping_cart"`
	ProductAction      *event.ProductAction     `json:"product_action"`
	PromotionAction    *event.PromotionAction   `json:"promotion_action"`
	ProductImpressions []event.Impression       `json:"product_impressions"`
	ProfileMessageType event.ProfileMessageType `json:"profile_message_type"`
}

// Tracker runs events through build, encode and transport.
type Tracker struct {
	sess      *session.Context
	builder   *builder.Builder
	encoder   atomic.Pointer[wire.Encoder]
	currency  atomic.Pointer[string]
	transport transport.Transport
}

// New creates a Tracker configured from cfg.
func New(sess *session.Context, tr transport.Transport, cfg *config.Config, opts ...builder.Option) *Tracker {
	t := &Tracker{
		sess:      sess,
		builder:   builder.New(sess, builderSettings(cfg), opts...),
		transport: tr,
	}
	t.Reconfigure(cfg)
	return t
}

func builderSettings(cfg *config.Config) builder.Settings {
	return builder.Settings{SDKVersion: cfg.SDK.SDKVersion, DevelopmentMode: cfg.SDK.DevelopmentMode}
}

// Reconfigure applies a new config (used on hot-reload).
func (t *Tracker) Reconfigure(cfg *config.Config) {
	t.builder.SetSettings(builderSettings(cfg))
	t.encoder.Store(wire.NewEncoder(wire.StaticHost{
		Embedded:         cfg.Host.WebViewEmbedded,
		DocumentReferrer: cfg.Host.Referrer,
	}))
	currency := cfg.SDK.CurrencyCode
	t.currency.Store(&currency)
	t.sess.Configure(cfg.SDK.AppVersion, cfg.SDK.DeviceID, cfg.SDK.Store)
}

// Session exposes the ambient state for callers that manage users and bags.
func (t *Tracker) Session() *session.Context { return t.sess }

// Log builds, encodes and sends one event. It returns builder.ErrNoSession when
// the event was suppressed. A transport failure still returns the DTO.
func (t *Tracker) Log(ctx context.Context, req Request) (wire.DTO, error) {
	rec, err := t.builder.Build(req.MessageType, req.Name, req.Attributes, req.EventType, req.CustomFlags)
	if err != nil {
		return nil, err
	}
	rec.ShoppingCart = req.ShoppingCart
	rec.ProductAction = req.ProductAction
	rec.PromotionAction = req.PromotionAction
	rec.ProductImpressions = req.ProductImpressions
	rec.ProfileMessageType = req.ProfileMessageType

	isFirstRun := false
	if rec.EventDataType == event.MessageTypeAppStateTransition {
		isFirstRun = t.sess.ConsumeFirstRun()
	}
	dto := t.encoder.Load().Encode(rec, isFirstRun, t.sess.ProductBags(), *t.currency.Load())

	if err := t.transport.Send(ctx, dto); err != nil {
		metrics.TransportFailures.Inc()
		slog.Warn("transport send failed", "message_type", rec.EventDataType.String(), "err", err)
		return dto, fmt.Errorf("send %s event: %w", rec.EventDataType, err)
	}
	return dto, nil
}

// StartSession opens a session and logs its SessionStart event.
func (t *Tracker) StartSession(ctx context.Context) (string, wire.DTO, error) {
	id := t.sess.StartSession()
	dto, err := t.Log(ctx, Request{MessageType: event.MessageTypeSessionStart})
	return id, dto, err
}

// EndSession logs SessionEnd and closes the session.
func (t *Tracker) EndSession(ctx context.Context) (wire.DTO, error) {
	dto, err := t.Log(ctx, Request{MessageType: event.MessageTypeSessionEnd})
	if dto != nil {
		t.sess.EndSession()
	}
	return dto, err
}

// SetOptOut updates the tracking-enabled flag and logs an OptOut event.
func (t *Tracker) SetOptOut(ctx context.Context, optOut bool) (wire.DTO, error) {
	t.sess.SetEnabled(!optOut)
	return t.Log(ctx, Request{MessageType: event.MessageTypeOptOut})
}
