package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultFileWhenMissing(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "profiles", "default", "fmanrc")

	cfg, err := Load(rc)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listing.SortMethod != "name" {
		t.Fatalf("want default sort method name, got %q", cfg.Listing.SortMethod)
	}
	if _, err := os.Stat(rc); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "fmanrc")

	cfg := &Config{}
	cfg.Listing.ShowHidden = true
	cfg.Listing.MaxFiles = 500
	if err := Save(rc, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Listing.ShowHidden || got.Listing.MaxFiles != 500 {
		t.Fatalf("got %+v", got.Listing)
	}
}

func TestResolvePathsLayout(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p := ResolvePaths("default")
	if p.ConfigDir != "/xdg/fman" {
		t.Fatalf("got %q", p.ConfigDir)
	}
	if p.Jump != "/xdg/fman/profiles/default/jump.cfm" {
		t.Fatalf("got %q", p.Jump)
	}
}
