package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tidytree/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
layered = true
parent_child_margin = 48.0
peer_margin = 24.0
formats = ["svg", "json"]
detailed = true
`)

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v", err)
	}
	if cfg.Layered == nil || !*cfg.Layered {
		t.Error("layered not loaded")
	}
	if cfg.ParentChildMargin == nil || *cfg.ParentChildMargin != 48 {
		t.Error("parent_child_margin not loaded")
	}
	if len(cfg.Formats) != 2 {
		t.Errorf("formats = %v, want two entries", cfg.Formats)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("loadConfigFile() error = %v, want nil for a missing file", err)
	}
	if cfg.Layered != nil || cfg.ParentChildMargin != nil {
		t.Error("missing config file produced non-empty settings")
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := writeConfig(t, "layered = [this is not toml")
	if _, err := loadConfigFile(path); err == nil {
		t.Error("loadConfigFile() succeeded on malformed TOML")
	}
}

func TestConfigApply(t *testing.T) {
	layered := true
	margin := 99.0
	cfg := Config{
		Layered:    &layered,
		PeerMargin: &margin,
		Formats:    []string{"dot"},
	}

	opts := pipeline.Options{
		ParentChildMargin: pipeline.DefaultParentChildMargin,
		PeerMargin:        pipeline.DefaultPeerMargin,
		Formats:           []string{"svg"},
	}
	cfg.apply(&opts)

	if !opts.Layered {
		t.Error("layered not applied")
	}
	if opts.PeerMargin != 99 {
		t.Errorf("PeerMargin = %v, want 99", opts.PeerMargin)
	}
	// Unset fields keep their defaults.
	if opts.ParentChildMargin != pipeline.DefaultParentChildMargin {
		t.Errorf("ParentChildMargin = %v, want untouched default", opts.ParentChildMargin)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "dot" {
		t.Errorf("Formats = %v, want [dot]", opts.Formats)
	}
}
