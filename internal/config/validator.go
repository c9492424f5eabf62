package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - Required fields
//   - A three-letter upper-case ISO 4217 currency code
//   - A known transport output
func Validate(cfg *Config) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	if cfg.SDK.SDKVersion == "" {
		errs = append(errs, "sdk.sdk_version is required")
	}
	if !isCurrencyCode(cfg.SDK.CurrencyCode) {
		errs = append(errs, fmt.Sprintf("sdk.currency_code %q must be three upper-case letters", cfg.SDK.CurrencyCode))
	}
	if strings.TrimSpace(cfg.Transport.Output) == "" {
		errs = append(errs, "transport.output must not be blank")
	}
	for k := range cfg.SDK.Store {
		if k == "" {
			errs = append(errs, "sdk.store: keys must not be empty")
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
