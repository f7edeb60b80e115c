package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputStems["data"] != "EMObs_Data.txt" {
		t.Fatalf("default data stem = %q", cfg.OutputStems["data"])
	}
	if cfg.HexDump.Width != 16 || cfg.HexDump.RowsPerPage != 48 {
		t.Fatalf("default hex dump geometry = %+v", cfg.HexDump)
	}
}

func TestLoadAppliesPartialOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	yaml := "output_stems:\n  data: custom.txt\nhex_dump:\n  width: 32\nmedia_roots:\n  - /media/a\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputStems["data"] != "custom.txt" {
		t.Fatalf("data stem = %q, want custom.txt", cfg.OutputStems["data"])
	}
	if cfg.OutputStems["tlclist"] != "EMObs_TLCList.txt" {
		t.Fatalf("tlclist stem should keep its default, got %q", cfg.OutputStems["tlclist"])
	}
	if cfg.HexDump.Width != 32 {
		t.Fatalf("width = %d, want 32 (overridden)", cfg.HexDump.Width)
	}
	if cfg.HexDump.RowsPerPage != 48 {
		t.Fatalf("rows per page = %d, want 48 (default)", cfg.HexDump.RowsPerPage)
	}
	if len(cfg.MediaRoots) != 1 || cfg.MediaRoots[0] != "/media/a" {
		t.Fatalf("media roots = %v", cfg.MediaRoots)
	}
}

func TestLoadRejectsUnknownOutputStemKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("output_stems:\n  bogus: x.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown output stem kind")
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/cfg.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
