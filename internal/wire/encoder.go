package wire

import (
	"time"

	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/metrics"
)

// Wire keys. Renaming any of these is a breaking protocol change.
const (
	KeyEventName          = "n"
	KeyEventCategory      = "et"
	KeyUserAttributes     = "ua"
	KeySessionAttributes  = "sa"
	KeyUserIdentities     = "ui"
	KeyStore              = "str"
	KeyEventAttributes    = "attrs"
	KeySDKVersion         = "sdk"
	KeySessionID          = "sid"
	KeySessionLength      = "sl"
	KeyEventDataType      = "dt"
	KeyDebug              = "dbg"
	KeyTimestamp          = "ct"
	KeyLocation           = "lc"
	KeyOptOut             = "o"
	KeyExpandedEventCount = "eec"
	KeyAppVersion         = "av"
	KeyClientGeneratedID  = "cgid"
	KeyDeviceID           = "das"
	KeyMPID               = "mpid"
	KeySessionMPIDs       = "smpids"

	KeyFirstRun           = "fr"
	KeyIsUpgrade          = "iu"
	KeyTransitionType     = "at"
	KeyLaunchReferral     = "lr"
	KeyCustomFlags        = "flags"
	KeyProductBags        = "pb"
	KeyCurrencyCode       = "cu"
	KeyShoppingCart       = "sc"
	KeyProductAction      = "pd"
	KeyPromotionAction    = "pm"
	KeyProductImpressions = "pi"
	KeyProfileMessageType = "pet"
)

// DTO is the short-keyed record handed to the transport.
type DTO map[string]interface{}

// Host answers questions about the environment the tracker runs in.
type Host interface {
	WebViewEmbedded() bool
	Referrer() string
}

// StaticHost is a Host with fixed answers.
type StaticHost struct {
	Embedded         bool
	DocumentReferrer string
}

func (h StaticHost) WebViewEmbedded() bool { return h.Embedded }
func (h StaticHost) Referrer() string      { return h.DocumentReferrer }

// Encoder converts canonical records to wire DTOs.
type Encoder struct {
	host Host
}

// NewEncoder creates an Encoder consulting host.
func NewEncoder(host Host) *Encoder {
	return &Encoder{host: host}
}

// Encode maps rec to a fresh DTO. productBags is encoded in place of the bags
// captured on the record, so the output reflects encode-time state.
func (e *Encoder) Encode(rec *event.Record, isFirstRun bool, productBags event.ProductBags, currencyCode string) DTO {
	start := time.Now()

	dto := DTO{
		KeyEventName:          rec.EventName,
		KeyEventCategory:      rec.EventCategory,
		KeyUserAttributes:     rec.UserAttributes,
		KeySessionAttributes:  rec.SessionAttributes,
		KeyUserIdentities:     rec.UserIdentities,
		KeyStore:              rec.Store,
		KeyEventAttributes:    rec.EventAttributes,
		KeySDKVersion:         rec.SDKVersion,
		KeySessionID:          rec.SessionID,
		KeyEventDataType:      rec.EventDataType,
		KeyDebug:              rec.Debug,
		KeyTimestamp:          rec.Timestamp,
		KeyLocation:           nil,
		KeyOptOut:             nil,
		KeyExpandedEventCount: rec.ExpandedEventCount,
		KeyAppVersion:         rec.AppVersion,
		KeyClientGeneratedID:  rec.ClientGeneratedID,
		KeyDeviceID:           rec.DeviceID,
		KeyMPID:               rec.MPID,
	}
	if rec.Location != nil {
		dto[KeyLocation] = *rec.Location
	}
	if rec.OptOut != nil {
		dto[KeyOptOut] = *rec.OptOut
	}
	if rec.SessionLength != nil {
		dto[KeySessionLength] = *rec.SessionLength
	}
	if rec.CurrentSessionMPIDs != nil {
		dto[KeySessionMPIDs] = rec.CurrentSessionMPIDs
	}

	if rec.EventDataType == event.MessageTypeAppStateTransition {
		dto[KeyFirstRun] = isFirstRun
		dto[KeyIsUpgrade] = false
		dto[KeyTransitionType] = event.AppInit
		dto[KeyLaunchReferral] = nil
		if ref := e.host.Referrer(); ref != "" {
			dto[KeyLaunchReferral] = ref
		}
		dto[KeyEventAttributes] = nil
	}

	if rec.CustomFlags != nil {
		flags := EncodeCustomFlags(rec.CustomFlags)
		if dropped := len(rec.CustomFlags) - len(flags); dropped > 0 {
			metrics.CustomFlagsDropped.Add(float64(dropped))
		}
		dto[KeyCustomFlags] = flags
	}

	dto[KeyProductBags] = EncodeProductBags(productBags, e.host.WebViewEmbedded())

	switch rec.EventDataType {
	case event.MessageTypeCommerce:
		dto[KeyCurrencyCode] = currencyCode
		if p := resolveCommerce(rec); p != nil {
			p.attach(dto)
		}
	case event.MessageTypeProfile:
		dto[KeyProfileMessageType] = rec.ProfileMessageType
	}

	metrics.EventsEncoded.WithLabelValues(rec.EventDataType.String()).Inc()
	metrics.EncodeDuration.Observe(float64(time.Since(start).Microseconds()))
	return dto
}
