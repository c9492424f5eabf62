package builder

import (
	"errors"
	"log/slog"
	"maps"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/metrics"
	"github.com/gyaneshwarpardhi/trackwire/internal/session"
)

// ErrNoSession is returned when an event is built outside a session.
// The event is dropped; callers skip transport.
var ErrNoSession = errors.New("no active session")

// StateStore is the ambient state the builder reads and mutates.
// *session.Context satisfies it.
type StateStore interface {
	Update(fn func(s *session.State))
}

// Settings are the process-wide values stamped onto every record.
type Settings struct {
	SDKVersion      string
	DevelopmentMode bool
}

// Builder assembles canonical event records.
type Builder struct {
	store    StateStore
	settings atomic.Pointer[Settings]
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// New creates a Builder over store.
func New(store StateStore, settings Settings, opts ...Option) *Builder {
	b := &Builder{store: store, now: time.Now}
	b.settings.Store(&settings)
	for _, o := range opts {
		o(b)
	}
	return b
}

// SetSettings swaps the stamped settings (used on hot-reload).
func (b *Builder) SetSettings(s Settings) {
	b.settings.Store(&s)
}

// Build assembles a record for one event. Ambient state is snapshotted under the
// store lock; product bags are kept by reference.
func (b *Builder) Build(
	messageType event.MessageType,
	name string,
	data map[string]interface{},
	eventType event.EventType,
	customFlags map[string]interface{},
) (*event.Record, error) {
	settings := b.settings.Load()
	var rec *event.Record

	b.store.Update(func(s *session.State) {
		if !s.Active() && messageType != event.MessageTypeOptOut {
			return
		}
		now := b.now()
		if messageType != event.MessageTypeSessionEnd {
			s.AdvanceTimestamp(now)
		}

		if name == "" {
			name = strconv.Itoa(int(messageType))
		}
		rec = &event.Record{
			EventName:          name,
			EventCategory:      eventType,
			UserAttributes:     maps.Clone(s.UserAttributes),
			SessionAttributes:  maps.Clone(s.SessionAttributes),
			UserIdentities:     append([]event.Identity(nil), s.UserIdentities...),
			Store:              s.StoreSettings,
			EventAttributes:    data,
			SDKVersion:         settings.SDKVersion,
			SessionID:          s.SessionID,
			EventDataType:      messageType,
			Debug:              settings.DevelopmentMode,
			Location:           s.Position,
			ProductBags:        s.ProductBags,
			ExpandedEventCount: 0,
			CustomFlags:        customFlags,
			AppVersion:         s.AppVersion,
			ClientGeneratedID:  s.ClientID,
			DeviceID:           s.DeviceID,
			MPID:               s.MPID,
		}
		if messageType == event.MessageTypeOptOut {
			optOut := !s.Enabled
			rec.OptOut = &optOut
		}

		if messageType == event.MessageTypeSessionEnd {
			if s.LastEventSent.IsZero() {
				// Nothing was sent in this session; report a zero-length session ending now.
				s.AdvanceTimestamp(now)
			}
			length := now.Sub(s.LastEventSent).Milliseconds()
			rec.SessionLength = &length
			rec.CurrentSessionMPIDs = s.ClearSessionMembers()
			if rec.CurrentSessionMPIDs == nil {
				rec.CurrentSessionMPIDs = []string{}
			}
		}

		rec.Timestamp = s.LastEventSent.UnixMilli()
	})

	if rec == nil {
		metrics.EventsSuppressed.Inc()
		slog.Debug("event suppressed", "message_type", messageType.String(), "name", name, "reason", ErrNoSession)
		return nil, ErrNoSession
	}
	metrics.EventsBuilt.WithLabelValues(messageType.String()).Inc()
	return rec, nil
}
