package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trackwire.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewLoader_Defaults(t *testing.T) {
	path := writeConfig(t, "version: v1\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	cfg := l.Config()
	if cfg.SDK.SDKVersion != DefaultSDKVersion || cfg.SDK.CurrencyCode != "USD" || cfg.Transport.Output != "stdout" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestNewLoader_Full(t *testing.T) {
	path := writeConfig(t, `
version: v2
sdk:
  sdk_version: "3.0.0"
  app_version: "1.4.2"
  development_mode: true
  currency_code: EUR
  device_id: dev-1
  store:
    rq: true
host:
  web_view_embedded: true
  referrer: https://ref.example
transport:
  output: /tmp/out.jsonl
  pretty: true
`)
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	cfg := l.Config()
	if cfg.SDK.AppVersion != "1.4.2" || !cfg.SDK.DevelopmentMode || cfg.SDK.CurrencyCode != "EUR" || cfg.SDK.DeviceID != "dev-1" {
		t.Errorf("sdk = %+v", cfg.SDK)
	}
	if cfg.SDK.Store["rq"] != true {
		t.Errorf("store = %v", cfg.SDK.Store)
	}
	if !cfg.Host.WebViewEmbedded || cfg.Host.Referrer != "https://ref.example" {
		t.Errorf("host = %+v", cfg.Host)
	}
	if !cfg.Transport.Pretty || cfg.Transport.Output != "/tmp/out.jsonl" {
		t.Errorf("transport = %+v", cfg.Transport)
	}
}

func TestNewLoader_Errors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewLoader(writeConfig(t, "version: [unterminated\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestReload_PublishesValidConfig(t *testing.T) {
	path := writeConfig(t, "version: v1\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	var seen []string
	l.OnChange(func(c *Config) { seen = append(seen, c.SDK.CurrencyCode) })

	if err := os.WriteFile(path, []byte("version: v1\nsdk:\n  currency_code: GBP\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if l.Config().SDK.CurrencyCode != "GBP" || len(seen) != 1 {
		t.Errorf("current=%q callbacks=%v", l.Config().SDK.CurrencyCode, seen)
	}

	if err := os.WriteFile(path, []byte("version: v1\nsdk:\n  currency_code: pounds\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reload(); err == nil {
		t.Fatal("expected validation error")
	}
	if l.Config().SDK.CurrencyCode != "GBP" || len(seen) != 1 {
		t.Errorf("invalid config was published: current=%q callbacks=%v", l.Config().SDK.CurrencyCode, seen)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "ok", cfg: Config{Version: "v1", SDK: SDKConf{SDKVersion: "1", CurrencyCode: "USD"}, Transport: TransportConf{Output: "stdout"}}},
		{name: "no version", cfg: Config{}, wantErr: "version is required"},
		{name: "bad currency", cfg: Config{Version: "v1", SDK: SDKConf{SDKVersion: "1", CurrencyCode: "usd"}, Transport: TransportConf{Output: "stdout"}}, wantErr: "currency_code"},
		{name: "blank output", cfg: Config{Version: "v1", SDK: SDKConf{SDKVersion: "1", CurrencyCode: "USD"}, Transport: TransportConf{Output: " "}}, wantErr: "transport.output"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
