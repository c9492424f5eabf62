package config

// Config is the top-level YAML structure.
type Config struct {
	Version   string        `yaml:"version"`
	SDK       SDKConf       `yaml:"sdk"`
	Host      HostConf      `yaml:"host"`
	Transport TransportConf `yaml:"transport"`
}

// SDKConf holds the values stamped onto every event.
type SDKConf struct {
	SDKVersion      string                 `yaml:"sdk_version"`
	AppVersion      string                 `yaml:"app_version"`
	DevelopmentMode bool                   `yaml:"development_mode"`
	CurrencyCode    string                 `yaml:"currency_code"`
	DeviceID        string                 `yaml:"device_id"` // empty = generated
	Store           map[string]interface{} `yaml:"store"`     // server-provided settings snapshot
}

// HostConf describes the environment the tracker is embedded in.
type HostConf struct {
	WebViewEmbedded bool   `yaml:"web_view_embedded"`
	Referrer        string `yaml:"referrer"`
}

// TransportConf controls how DTOs are written out.
type TransportConf struct {
	Output string `yaml:"output"` // "stdout" or a file path
	Pretty bool   `yaml:"pretty"`
}
