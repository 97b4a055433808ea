// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
device:
  name: BASE-STATION-NORTH-01
  profile: full
  role: base
  transitions: guarded
base:
  coordinates: survey
  start_accuracy_m: 4
gnss:
  port: auto
export:
  endpoint: 127.0.0.1:502
  base_slot: 2
api:
  listen: ":8080"
`

func TestLoad_AndNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtk.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	Normalize(cfg)

	if cfg.Device.Name != "BASE-STATION-NOR" {
		t.Fatalf("name not truncated: %q", cfg.Device.Name)
	}
	if cfg.Base.StartAccuracyM != 4 || cfg.Base.TargetAccuracyM != DefaultTargetAccuracyM {
		t.Fatalf("accuracies: %+v", cfg.Base)
	}
	if cfg.GNSS.Baud != DefaultBaud || cfg.GNSS.FixTimeoutMs != DefaultFixTimeoutMs {
		t.Fatalf("gnss defaults: %+v", cfg.GNSS)
	}
	if cfg.Export.Protocol != "modbus" || cfg.Export.IntervalMs != DefaultExportIntervalMs {
		t.Fatalf("export defaults: %+v", cfg.Export)
	}
	if cfg.Export.BaseSlot != 2 {
		t.Fatalf("base_slot: got %d", cfg.Export.BaseSlot)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("logging level: %q", cfg.Logging.Level)
	}
}

func TestParse_UnknownKey(t *testing.T) {
	if _, err := Parse([]byte("device:\n  nmae: typo\n")); err == nil {
		t.Fatalf("expected unknown key error, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestNormalize_TargetAboveDefaultStart(t *testing.T) {
	cfg := &Config{Base: BaseConfig{TargetAccuracyM: 8}}
	Normalize(cfg)

	if cfg.Base.StartAccuracyM != 8 {
		t.Fatalf("start accuracy: got %v want 8", cfg.Base.StartAccuracyM)
	}
}

func TestParse_EmptyIsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	Normalize(cfg)
	if cfg.Device.Profile != "full" || cfg.Export.IntervalMs != DefaultExportIntervalMs {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestNormalize_KeepsExplicitStart(t *testing.T) {
	cfg := &Config{Base: BaseConfig{StartAccuracyM: 1.0}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	Normalize(cfg)

	if cfg.Base.StartAccuracyM != 1.0 {
		t.Fatalf("explicit start_accuracy_m rewritten to %v", cfg.Base.StartAccuracyM)
	}
	if cfg.Base.TargetAccuracyM != 1.0 {
		t.Fatalf("target accuracy: got %v want 1", cfg.Base.TargetAccuracyM)
	}
	if cfg.Base.TargetAccuracyM > cfg.Base.StartAccuracyM {
		t.Fatalf("target looser than start: %+v", cfg.Base)
	}
}

func TestNormalize_DefaultAccuracies(t *testing.T) {
	cfg := &Config{}
	Normalize(cfg)

	if cfg.Base.StartAccuracyM != DefaultStartAccuracyM || cfg.Base.TargetAccuracyM != DefaultTargetAccuracyM {
		t.Fatalf("accuracies: %+v", cfg.Base)
	}
}
