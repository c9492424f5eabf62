package session

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/trackwire/internal/event"
)

// State is the ambient session and user state read by the builder.
// It is only ever touched through Context.Update, which holds the lock.
type State struct {
	SessionID         string
	Enabled           bool
	FirstRun          bool
	LastEventSent     time.Time
	SessionMPIDs      []string
	UserAttributes    map[string]interface{}
	SessionAttributes map[string]interface{}
	UserIdentities    []event.Identity
	StoreSettings     map[string]interface{}
	Position          *event.Position
	ProductBags       event.ProductBags
	AppVersion        string
	ClientID          string
	DeviceID          string
	MPID              string
}

// AdvanceTimestamp records now as the date of the last event sent and returns it.
func (s *State) AdvanceTimestamp(now time.Time) time.Time {
	s.LastEventSent = now
	return now
}

// ClearSessionMembers empties the session member list and returns its previous contents.
func (s *State) ClearSessionMembers() []string {
	prev := s.SessionMPIDs
	s.SessionMPIDs = []string{}
	return prev
}

// Active reports whether a session is in progress.
func (s *State) Active() bool { return s.SessionID != "" }

// Context serializes every access to a State.
type Context struct {
	mu    sync.Mutex
	state State
}

// New creates a Context with tracking enabled, fresh client id and empty bags.
func New() *Context {
	return &Context{state: State{
		Enabled:           true,
		FirstRun:          true,
		ClientID:          uuid.New().String(),
		SessionMPIDs:      []string{},
		UserAttributes:    make(map[string]interface{}),
		SessionAttributes: make(map[string]interface{}),
		StoreSettings:     make(map[string]interface{}),
		ProductBags:       make(event.ProductBags),
	}}
}

// Update runs fn with exclusive access to the state.
func (c *Context) Update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

// StartSession opens a new session, seeding the member list with the current MPID.
func (c *Context) StartSession() string {
	id := uuid.New().String()
	c.Update(func(s *State) {
		s.SessionID = id
		s.SessionAttributes = make(map[string]interface{})
		s.SessionMPIDs = []string{}
		if s.MPID != "" {
			s.SessionMPIDs = append(s.SessionMPIDs, s.MPID)
		}
	})
	return id
}

// EndSession clears the session id.
func (c *Context) EndSession() {
	c.Update(func(s *State) {
		s.SessionID = ""
		s.SessionAttributes = make(map[string]interface{})
	})
}

// SessionID returns the active session id or "".
func (c *Context) SessionID() string {
	var id string
	c.Update(func(s *State) { id = s.SessionID })
	return id
}

// SetMPID switches the current user and records it as a session member.
func (c *Context) SetMPID(mpid string) {
	c.Update(func(s *State) {
		s.MPID = mpid
		if s.SessionID == "" || mpid == "" {
			return
		}
		for _, m := range s.SessionMPIDs {
			if m == mpid {
				return
			}
		}
		s.SessionMPIDs = append(s.SessionMPIDs, mpid)
	})
}

// SetEnabled flips the tracking-enabled flag.
func (c *Context) SetEnabled(enabled bool) {
	c.Update(func(s *State) { s.Enabled = enabled })
}

// SetUserAttribute stores one user attribute.
func (c *Context) SetUserAttribute(key string, value interface{}) {
	c.Update(func(s *State) { s.UserAttributes[key] = value })
}

// RemoveUserAttribute deletes one user attribute.
func (c *Context) RemoveUserAttribute(key string) {
	c.Update(func(s *State) { delete(s.UserAttributes, key) })
}

// AddToProductBag appends a product to the named bag, creating it if needed.
func (c *Context) AddToProductBag(name string, p event.Product) {
	c.Update(func(s *State) { s.ProductBags[name] = append(s.ProductBags[name], p) })
}

// RemoveProductBag drops a bag and reports whether it existed.
func (c *Context) RemoveProductBag(name string) bool {
	var ok bool
	c.Update(func(s *State) {
		_, ok = s.ProductBags[name]
		delete(s.ProductBags, name)
	})
	return ok
}

// ProductBags returns a copy of the current bags for encode-time use.
func (c *Context) ProductBags() event.ProductBags {
	var out event.ProductBags
	c.Update(func(s *State) {
		out = make(event.ProductBags, len(s.ProductBags))
		for k, v := range s.ProductBags {
			out[k] = append([]event.Product(nil), v...)
		}
	})
	return out
}

// Configure applies values sourced from configuration.
func (c *Context) Configure(appVersion, deviceID string, store map[string]interface{}) {
	c.Update(func(s *State) {
		s.AppVersion = appVersion
		if deviceID != "" {
			s.DeviceID = deviceID
		} else if s.DeviceID == "" {
			s.DeviceID = uuid.New().String()
		}
		s.StoreSettings = maps.Clone(store)
		if s.StoreSettings == nil {
			s.StoreSettings = make(map[string]interface{})
		}
	})
}

// ConsumeFirstRun returns the first-run flag and clears it.
func (c *Context) ConsumeFirstRun() bool {
	var first bool
	c.Update(func(s *State) {
		first = s.FirstRun
		s.FirstRun = false
	})
	return first
}
