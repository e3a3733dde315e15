package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/logging"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ls-solar.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loc, err := cfg.ResolveLocation()
	if err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if loc.Name != "Urbana" {
		t.Errorf("default location = %s, want Urbana", loc.Name)
	}
	if cfg.TwilightKind() != astro.Civil || cfg.Level() != logging.LevelInfo {
		t.Errorf("defaults: twilight %v level %v", cfg.TwilightKind(), cfg.Level())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
location: cabin
log_level: debug
twilight: nautical
locations:
  - name: Cabin
    latitude: 61.2
    longitude: -149.9
    elevation: 30
    zone: -9
schedules:
  - spec: "@sunset -30m"
    label: porch light
  - spec: "0 6 * * *"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	loc, err := cfg.ResolveLocation()
	if err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if loc.Latitude != 61.2 || loc.Zone != -9 || loc.Elevation != 30 {
		t.Errorf("location = %+v", loc)
	}
	if cfg.TwilightKind() != astro.Nautical || cfg.Level() != logging.LevelDebug {
		t.Errorf("twilight %v level %v", cfg.TwilightKind(), cfg.Level())
	}

	entries := cfg.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Label != "porch light" || entries[1].Label != "0 6 * * *" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LS_SOLAR_LOCATION", "tehran")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loc, _ := cfg.ResolveLocation()
	if loc.Name != "Tehran" {
		t.Errorf("location = %s, want Tehran", loc.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{
		Location: "nowhere",
		LogLevel: "loud",
		Twilight: "golden",
		Locations: []LocationConfig{
			{Name: "", Latitude: 95, Longitude: 200, Zone: 20},
		},
		Schedules: []ScheduleConfig{{Spec: "@sunset whenever", Label: "bad"}},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted a broken config")
	}
	if !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("error does not wrap ErrUnknownLocation: %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"missing name", "latitude 95", "longitude 200", "zone 20", "golden", "loud", "schedules[0]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}

func TestLookup(t *testing.T) {
	cfg := &Config{Locations: []LocationConfig{{Name: "Urbana", Latitude: 1}}}

	loc, err := cfg.Lookup("urbana")
	if err != nil || loc.Latitude != 1 {
		t.Errorf("custom location should shadow preset: %+v, %v", loc, err)
	}
	if loc, err := cfg.Lookup("Mecca"); err != nil || loc.Name != "Mecca" {
		t.Errorf("preset lookup: %+v, %v", loc, err)
	}
	if _, err := cfg.Lookup("Atlantis"); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Lookup(Atlantis) err = %v", err)
	}
}
