package event

// Record is the canonical in-memory representation of one tracked event,
// assembled before wire encoding.
type Record struct {
	EventName          string
	EventCategory      EventType
	UserAttributes     map[string]interface{}
	SessionAttributes  map[string]interface{}
	UserIdentities     []Identity
	Store              map[string]interface{}
	EventAttributes    map[string]interface{}
	SDKVersion         string
	SessionID          string
	SessionLength      *int64 // milliseconds, SessionEnd only
	EventDataType      MessageType
	Debug              bool
	Timestamp          int64 // epoch milliseconds
	Location           *Position
	OptOut             *bool // nil unless EventDataType is OptOut
	ProductBags        ProductBags
	ExpandedEventCount int
	CustomFlags        map[string]interface{}
	AppVersion         string
	ClientGeneratedID  string
	DeviceID           string
	MPID               string

	CurrentSessionMPIDs []string // SessionEnd only

	// Attached by the caller after build.
	ShoppingCart       *ShoppingCart
	ProductAction      *ProductAction
	PromotionAction    *PromotionAction
	ProductImpressions []Impression
	ProfileMessageType ProfileMessageType
}
