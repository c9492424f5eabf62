package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gyaneshwarpardhi/trackwire/internal/builder"
	"github.com/gyaneshwarpardhi/trackwire/internal/config"
	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/session"
	"github.com/gyaneshwarpardhi/trackwire/internal/tracker"
	"github.com/gyaneshwarpardhi/trackwire/internal/wire"
)

// recorder is a transport that keeps every DTO.
type recorder struct {
	sent []wire.DTO
	err  error
}

func (r *recorder) Send(_ context.Context, dto wire.DTO) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, dto)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Version: "v1",
		SDK: config.SDKConf{
			SDKVersion:   "2.1.0",
			AppVersion:   "9.9",
			CurrencyCode: "EUR",
			DeviceID:     "dev-1",
		},
		Host:      config.HostConf{Referrer: "https://ref.example"},
		Transport: config.TransportConf{Output: "stdout"},
	}
}

func newTracker(t *testing.T) (*tracker.Tracker, *recorder) {
	t.Helper()
	rec := &recorder{}
	now := time.UnixMilli(5_000_000)
	tr := tracker.New(session.New(), rec, testConfig(), builder.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	return tr, rec
}

func TestLog_SuppressedWithoutSession(t *testing.T) {
	tr, rec := newTracker(t)
	dto, err := tr.Log(context.Background(), tracker.Request{MessageType: event.MessageTypePageEvent, Name: "x"})
	if !errors.Is(err, builder.ErrNoSession) || dto != nil {
		t.Fatalf("dto=%v err=%v, want ErrNoSession", dto, err)
	}
	if len(rec.sent) != 0 {
		t.Errorf("transport received %d DTOs", len(rec.sent))
	}
}

func TestLog_CommerceUsesConfigAndBags(t *testing.T) {
	tr, rec := newTracker(t)
	ctx := context.Background()
	if _, _, err := tr.StartSession(ctx); err != nil {
		t.Fatalf("StartSession error: %v", err)
	}
	tr.Session().AddToProductBag("wishlist", event.Product{Sku: "w1"})

	dto, err := tr.Log(ctx, tracker.Request{
		MessageType:  event.MessageTypeCommerce,
		Name:         "checkout",
		EventType:    event.EventTypeProductCheckout,
		ShoppingCart: &event.ShoppingCart{ProductList: []event.Product{{Sku: "c1"}}},
	})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if dto["cu"] != "EUR" || dto["av"] != "9.9" || dto["das"] != "dev-1" {
		t.Errorf("cu/av/das = %v/%v/%v", dto["cu"], dto["av"], dto["das"])
	}
	if _, ok := dto["sc"]; !ok {
		t.Error("sc missing")
	}
	pb := dto["pb"].(map[string]map[string][]wire.ProductDTO)
	if len(pb["wishlist"]["pl"]) != 1 {
		t.Errorf("pb = %v", pb)
	}
	if len(rec.sent) != 2 {
		t.Errorf("sent %d DTOs, want session start + commerce", len(rec.sent))
	}
}

func TestLog_FirstRunOnlyOnce(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	tr.StartSession(ctx)
	for i, want := range []bool{true, false} {
		dto, err := tr.Log(ctx, tracker.Request{MessageType: event.MessageTypeAppStateTransition})
		if err != nil {
			t.Fatalf("Log error: %v", err)
		}
		if dto["fr"] != want {
			t.Errorf("call %d: fr = %v, want %v", i, dto["fr"], want)
		}
		if dto["lr"] != "https://ref.example" {
			t.Errorf("lr = %v", dto["lr"])
		}
	}
}

func TestEndSession(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	tr.Session().SetMPID("u1")
	tr.StartSession(ctx)

	dto, err := tr.EndSession(ctx)
	if err != nil {
		t.Fatalf("EndSession error: %v", err)
	}
	if dto["dt"] != event.MessageTypeSessionEnd {
		t.Errorf("dt = %v", dto["dt"])
	}
	if ids, _ := dto["smpids"].([]string); len(ids) != 1 || ids[0] != "u1" {
		t.Errorf("smpids = %v", dto["smpids"])
	}
	if tr.Session().SessionID() != "" {
		t.Error("session still active")
	}
	if _, err := tr.EndSession(ctx); !errors.Is(err, builder.ErrNoSession) {
		t.Errorf("second EndSession err = %v", err)
	}
}

func TestSetOptOut_WithoutSession(t *testing.T) {
	tr, rec := newTracker(t)
	dto, err := tr.SetOptOut(context.Background(), true)
	if err != nil {
		t.Fatalf("SetOptOut error: %v", err)
	}
	if dto["o"] != true {
		t.Errorf("o = %v, want true", dto["o"])
	}
	if len(rec.sent) != 1 {
		t.Errorf("sent %d DTOs", len(rec.sent))
	}
}

func TestLog_TransportFailure(t *testing.T) {
	tr, rec := newTracker(t)
	ctx := context.Background()
	tr.StartSession(ctx)
	rec.err = errors.New("boom")
	dto, err := tr.Log(ctx, tracker.Request{MessageType: event.MessageTypePageView, Name: "home"})
	if err == nil || !errors.Is(err, rec.err) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if dto == nil || dto["n"] != "home" {
		t.Errorf("dto = %v", dto)
	}
}

func TestReconfigure(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	tr.StartSession(ctx)
	tr.Session().AddToProductBag("b", event.Product{Sku: "1"})

	cfg := testConfig()
	cfg.SDK.CurrencyCode = "JPY"
	cfg.SDK.SDKVersion = "3.0.0"
	cfg.Host.WebViewEmbedded = true
	tr.Reconfigure(cfg)

	dto, err := tr.Log(ctx, tracker.Request{MessageType: event.MessageTypeCommerce})
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if dto["cu"] != "JPY" || dto["sdk"] != "3.0.0" {
		t.Errorf("cu/sdk = %v/%v", dto["cu"], dto["sdk"])
	}
	pb := dto["pb"].(map[string]map[string][]wire.ProductDTO)
	if _, ok := pb["b"]["ProductList"]; !ok {
		t.Errorf("pb not in web view shape: %v", pb)
	}
}
