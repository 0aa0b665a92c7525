package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Screen.Width != 360 || cfg.Screen.Height != 640 {
		t.Errorf("expected 360x640 viewport, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Water.MaxAcceleration != 75 {
		t.Errorf("expected max acceleration 75, got %v", cfg.Water.MaxAcceleration)
	}
	if cfg.Derived.SteerAccel != 75*0.75 {
		t.Errorf("expected steer accel %v, got %v", 75*0.75, cfg.Derived.SteerAccel)
	}
	if cfg.Derived.Lifespan != 10*time.Second {
		t.Errorf("expected 10s lifespan, got %v", cfg.Derived.Lifespan)
	}
	if cfg.Derived.Frequency != 200*time.Millisecond {
		t.Errorf("expected 200ms frequency, got %v", cfg.Derived.Frequency)
	}
	if len(cfg.Rocks.Variants) != 4 {
		t.Errorf("expected 4 rock variants, got %d", len(cfg.Rocks.Variants))
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	data := []byte("water:\n  flow_acceleration: 30\nrocks:\n  count: 9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}

	if cfg.Water.FlowAcceleration != 30 {
		t.Errorf("expected overridden flow acceleration 30, got %v", cfg.Water.FlowAcceleration)
	}
	if cfg.Rocks.Count != 9 {
		t.Errorf("expected overridden rock count 9, got %d", cfg.Rocks.Count)
	}
	// Untouched fields keep their defaults
	if cfg.Water.MaxAcceleration != 75 {
		t.Errorf("expected default max acceleration 75, got %v", cfg.Water.MaxAcceleration)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rocks:\n  random_fraction: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for random_fraction outside [0,1]")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsNegativeCounts(t *testing.T) {
	cases := map[string]string{
		"rocks.count":         "rocks:\n  count: -1\n",
		"rocks.field_radius":  "rocks:\n  field_radius: -4\n",
		"particles.pool_size": "particles:\n  pool_size: -10\n",
		"particles.quantity":  "particles:\n  quantity: -2\n",
	}
	for key, doc := range cases {
		path := filepath.Join(t.TempDir(), "neg.yaml")
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected error for negative value", key)
			continue
		}
		if !strings.Contains(err.Error(), key) {
			t.Errorf("%s: error %q does not name the key", key, err)
		}
	}
}

func TestLoadAcceptsZeroRocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calm.yaml")
	if err := os.WriteFile(path, []byte("rocks:\n  count: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("zero rocks should load: %v", err)
	}
	if cfg.Rocks.Count != 0 {
		t.Errorf("rocks.count = %d, want 0", cfg.Rocks.Count)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Rocks.Count = 11

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Rocks.Count != 11 {
		t.Errorf("expected rock count 11 after roundtrip, got %d", loaded.Rocks.Count)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
