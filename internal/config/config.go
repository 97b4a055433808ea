// internal/config/config.go
package config

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Base    BaseConfig    `yaml:"base"`
	GNSS    GNSSConfig    `yaml:"gnss"`
	Export  ExportConfig  `yaml:"export"`
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name        string `yaml:"name"`
	Profile     string `yaml:"profile"`     // full | base | rover
	Role        string `yaml:"role"`        // rover | base (role at start-up)
	Transitions string `yaml:"transitions"` // permissive | guarded
}

// ---- BASE ----

type BaseConfig struct {
	Coordinates string `yaml:"coordinates"` // survey | fixed

	StartAccuracyM  float64 `yaml:"start_accuracy_m"`
	TargetAccuracyM float64 `yaml:"target_accuracy_m"`
	MinSurveyS      int     `yaml:"min_survey_s"`

	// FastBlinkAccuracyM switches the base LED to fast blink while surveying.
	FastBlinkAccuracyM float64 `yaml:"fast_blink_accuracy_m"`
}

// ---- GNSS ----

type GNSSConfig struct {
	Port         string `yaml:"port"` // device path, or "auto"
	Baud         int    `yaml:"baud"`
	FixTimeoutMs int    `yaml:"fix_timeout_ms"`

	// LogDir enables the raw NMEA data log (storage + logging peripherals).
	LogDir string `yaml:"log_dir"`
}

// ---- EXPORT ----

type ExportConfig struct {
	Endpoint   string `yaml:"endpoint"` // empty disables the status block
	Protocol   string `yaml:"protocol"` // modbus | ingest
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	IntervalMs int    `yaml:"interval_ms"`
}

// ---- API ----

type APIConfig struct {
	Listen string `yaml:"listen"` // empty disables the HTTP API

	// AllowOrigins lists CORS origins for browser dashboards. Empty allows all.
	AllowOrigins []string `yaml:"allow_origins"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}
