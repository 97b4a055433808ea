// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/rtk-status/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	// device name sanity (ASCII only)
	for i := 0; i < len(cfg.Device.Name); i++ {
		if cfg.Device.Name[i] > 0x7F {
			return fmt.Errorf(
				"device %q: name must contain ASCII characters only",
				cfg.Device.Name,
			)
		}
	}

	profile, err := status.ParseProfile(cfg.Device.Profile)
	if err != nil {
		return fmt.Errorf("device.profile: %w", err)
	}

	if _, err := status.ParsePolicy(cfg.Device.Transitions); err != nil {
		return fmt.Errorf("device.transitions: %w", err)
	}

	switch cfg.Device.Role {
	case "", "rover":
		if profile == status.ProfileBase {
			return fmt.Errorf("device.role %q: base profile cannot start as rover", cfg.Device.Role)
		}
	case "base":
		if profile == status.ProfileRover {
			return fmt.Errorf("device.role %q: rover profile has no base modes", cfg.Device.Role)
		}
	default:
		return fmt.Errorf("device.role %q: must be rover or base", cfg.Device.Role)
	}

	// ------------------------------------------------------------
	// BASE
	// ------------------------------------------------------------

	switch cfg.Base.Coordinates {
	case "", "survey":
		if cfg.Base.StartAccuracyM < 0 || cfg.Base.TargetAccuracyM < 0 {
			return fmt.Errorf("base: accuracies must not be negative")
		}
		if cfg.Base.StartAccuracyM > 0 && cfg.Base.TargetAccuracyM > cfg.Base.StartAccuracyM {
			return fmt.Errorf(
				"base: target_accuracy_m %.2f is looser than start_accuracy_m %.2f",
				cfg.Base.TargetAccuracyM,
				cfg.Base.StartAccuracyM,
			)
		}
		if cfg.Base.MinSurveyS < 0 {
			return fmt.Errorf("base: min_survey_s must not be negative")
		}
		if cfg.Base.MinSurveyS >= int(status.SurveyTimeout.Seconds()) {
			return fmt.Errorf(
				"base: min_survey_s %d never completes before the %s survey-in timeout",
				cfg.Base.MinSurveyS,
				status.SurveyTimeout,
			)
		}
	case "fixed":
	default:
		return fmt.Errorf("base.coordinates %q: must be survey or fixed", cfg.Base.Coordinates)
	}

	// ------------------------------------------------------------
	// GNSS
	// ------------------------------------------------------------

	if cfg.GNSS.Baud < 0 {
		return fmt.Errorf("gnss.baud %d: must not be negative", cfg.GNSS.Baud)
	}
	if cfg.GNSS.FixTimeoutMs < 0 {
		return fmt.Errorf("gnss.fix_timeout_ms %d: must not be negative", cfg.GNSS.FixTimeoutMs)
	}

	// ------------------------------------------------------------
	// EXPORT (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Export.Endpoint != "" {
		switch cfg.Export.Protocol {
		case "", "modbus", "ingest":
		default:
			return fmt.Errorf(
				"export %q: protocol %q must be modbus or ingest",
				cfg.Export.Endpoint,
				cfg.Export.Protocol,
			)
		}

		// the whole block must fit in the 16-bit register space
		end := uint32(cfg.Export.BaseSlot)*status.SlotsPerDevice + status.SlotsPerDevice - 1
		if end > 0xFFFF {
			return fmt.Errorf(
				"export %q: base_slot %d puts the status block past register 65535",
				cfg.Export.Endpoint,
				cfg.Export.BaseSlot,
			)
		}

		if cfg.Export.TimeoutMs < 0 || cfg.Export.IntervalMs < 0 {
			return fmt.Errorf("export %q: timeouts must not be negative", cfg.Export.Endpoint)
		}
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch cfg.Logging.Level {
	case "", "debug", "trace", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: unknown level", cfg.Logging.Level)
	}

	return nil
}
