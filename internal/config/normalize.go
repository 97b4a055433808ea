// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultStartAccuracyM     = 5.0
	DefaultTargetAccuracyM    = 2.0
	DefaultMinSurveyS         = 60
	DefaultFastBlinkAccuracyM = 5.0

	DefaultBaud         = 115200
	DefaultFixTimeoutMs = 3000

	DefaultExportTimeoutMs  = 2000
	DefaultExportIntervalMs = 1000
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Normalize device name:
	// - ASCII already validated
	// - Truncate to max 16 characters
	if len(cfg.Device.Name) > 16 {
		cfg.Device.Name = cfg.Device.Name[:16]
	}

	if cfg.Device.Profile == "" {
		cfg.Device.Profile = "full"
	}
	if cfg.Device.Transitions == "" {
		cfg.Device.Transitions = "permissive"
	}
	if cfg.Device.Role == "" {
		cfg.Device.Role = "rover"
	}

	if cfg.Base.Coordinates == "" {
		cfg.Base.Coordinates = "survey"
	}
	// explicit thresholds are never moved; defaults bend around them
	switch {
	case cfg.Base.StartAccuracyM == 0 && cfg.Base.TargetAccuracyM == 0:
		cfg.Base.StartAccuracyM = DefaultStartAccuracyM
		cfg.Base.TargetAccuracyM = DefaultTargetAccuracyM
	case cfg.Base.StartAccuracyM == 0:
		cfg.Base.StartAccuracyM = max(DefaultStartAccuracyM, cfg.Base.TargetAccuracyM)
	case cfg.Base.TargetAccuracyM == 0:
		cfg.Base.TargetAccuracyM = min(DefaultTargetAccuracyM, cfg.Base.StartAccuracyM)
	}
	if cfg.Base.MinSurveyS == 0 {
		cfg.Base.MinSurveyS = DefaultMinSurveyS
	}
	if cfg.Base.FastBlinkAccuracyM == 0 {
		cfg.Base.FastBlinkAccuracyM = DefaultFastBlinkAccuracyM
	}

	if cfg.GNSS.Baud == 0 {
		cfg.GNSS.Baud = DefaultBaud
	}
	if cfg.GNSS.FixTimeoutMs == 0 {
		cfg.GNSS.FixTimeoutMs = DefaultFixTimeoutMs
	}

	if cfg.Export.Endpoint != "" {
		if cfg.Export.Protocol == "" {
			cfg.Export.Protocol = "modbus"
		}
		if cfg.Export.TimeoutMs == 0 {
			cfg.Export.TimeoutMs = DefaultExportTimeoutMs
		}
	}
	if cfg.Export.IntervalMs <= 0 {
		cfg.Export.IntervalMs = DefaultExportIntervalMs
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
