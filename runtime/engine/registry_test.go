package engine

import (
	"path/filepath"
	"testing"
)

func registryConfig(t *testing.T, file string) Config {
	t.Helper()
	return Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), file)}
}

func TestRegistryReusesEngineForSameKey(t *testing.T) {
	r := NewRegistry()
	defer r.CloseAll()

	cfg := registryConfig(t, "app.db")
	first, err := r.Open("default", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	second, err := r.Open("default", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if first != second {
		t.Error("Expected the same engine instance for an unchanged config")
	}
}

func TestRegistryRotatesOnConfigChange(t *testing.T) {
	r := NewRegistry()
	defer r.CloseAll()

	first, err := r.Open("default", registryConfig(t, "one.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	second, err := r.Open("default", registryConfig(t, "two.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if first == second {
		t.Error("Expected a fresh engine after the config changed")
	}
}

func TestRegistryKeepsProfilesSeparate(t *testing.T) {
	r := NewRegistry()
	defer r.CloseAll()

	cfg := registryConfig(t, "shared.db")
	a, err := r.Open("primary", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	b, err := r.Open("replica", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if a == b {
		t.Error("Profiles must not share engine instances")
	}
}

func TestRotateIfConfigChanged(t *testing.T) {
	r := NewRegistry()
	defer r.CloseAll()

	cfg := registryConfig(t, "one.db")
	first, err := r.Open("default", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// Same config: nothing rotates.
	r.RotateIfConfigChanged("default", cfg)
	same, err := r.Open("default", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if same != first {
		t.Error("Rotation with an unchanged config must be a no-op")
	}

	changed := registryConfig(t, "two.db")
	r.RotateIfConfigChanged("default", changed)
	fresh, err := r.Open("default", changed)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if fresh == first {
		t.Error("Expected a fresh engine after rotation")
	}
}

func TestCloseAllEmptiesRegistry(t *testing.T) {
	r := NewRegistry()

	cfg := registryConfig(t, "app.db")
	first, err := r.Open("default", cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := r.CloseAll(); err != nil {
		t.Fatalf("CloseAll failed: %v", err)
	}

	reopened, err := r.Open("default", cfg)
	if err != nil {
		t.Fatalf("Open after CloseAll failed: %v", err)
	}
	if reopened == first {
		t.Error("Expected a fresh engine after CloseAll")
	}
	r.CloseAll()
}
