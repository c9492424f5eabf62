package event

import "strconv"

// MessageType is the category of a tracked message. It drives encoder branching.
type MessageType int

const (
	MessageTypeSessionStart       MessageType = 1
	MessageTypeSessionEnd         MessageType = 2
	MessageTypePageView           MessageType = 3
	MessageTypePageEvent          MessageType = 4
	MessageTypeCrashReport        MessageType = 5
	MessageTypeOptOut             MessageType = 6
	MessageTypeAppStateTransition MessageType = 10
	MessageTypeProfile            MessageType = 14
	MessageTypeCommerce           MessageType = 16
)

var messageTypeNames = map[MessageType]string{
	MessageTypeSessionStart:       "session_start",
	MessageTypeSessionEnd:         "session_end",
	MessageTypePageView:           "page_view",
	MessageTypePageEvent:          "page_event",
	MessageTypeCrashReport:        "crash_report",
	MessageTypeOptOut:             "opt_out",
	MessageTypeAppStateTransition: "app_state_transition",
	MessageTypeProfile:            "profile",
	MessageTypeCommerce:           "commerce",
}

func (m MessageType) String() string {
	if s, ok := messageTypeNames[m]; ok {
		return s
	}
	return "message_type_" + strconv.Itoa(int(m))
}

// EventType is the caller-chosen kind of a custom or commerce event.
type EventType int

const (
	EventTypeUnknown        EventType = 0
	EventTypeNavigation     EventType = 1
	EventTypeLocation       EventType = 2
	EventTypeSearch         EventType = 3
	EventTypeTransaction    EventType = 4
	EventTypeUserContent    EventType = 5
	EventTypeUserPreference EventType = 6
	EventTypeSocial         EventType = 7
	EventTypeOther          EventType = 8

	EventTypeProductAddToCart      EventType = 10
	EventTypeProductRemoveFromCart EventType = 11
	EventTypeProductCheckout       EventType = 12
	EventTypeProductCheckoutOption EventType = 13
	EventTypeProductClick          EventType = 14
	EventTypeProductViewDetail     EventType = 15
	EventTypeProductPurchase       EventType = 16
	EventTypeProductRefund         EventType = 17
	EventTypePromotionView         EventType = 18
	EventTypePromotionClick        EventType = 19
	EventTypeProductImpression     EventType = 22
)

// ApplicationTransitionType is the lifecycle sub-type of an AppStateTransition.
type ApplicationTransitionType int

const (
	AppInit       ApplicationTransitionType = 1
	AppExit       ApplicationTransitionType = 2
	AppBackground ApplicationTransitionType = 3
	AppForeground ApplicationTransitionType = 4
)

// ProfileMessageType is the sub-type of a Profile message.
type ProfileMessageType int

const ProfileLogout ProfileMessageType = 3

// Identity is one user identity (email, customer id, ...).
type Identity struct {
	Identity string `json:"Identity"`
	Type     int    `json:"Type"`
}

// Position is the last known device location.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
