package cliargs

import "testing"

func TestParseMinimalPositionalOnly(t *testing.T) {
	cfg, err := Parse([]string{`C:\data\*.emobs`})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FileSpec != "*.emobs" {
		t.Fatalf("FileSpec = %q, want *.emobs", cfg.FileSpec)
	}
	if !cfg.DataMode {
		t.Fatal("DataMode should default to true")
	}
	if cfg.SearchSubdirs || cfg.AppendMode || cfg.TLCMode || cfg.HexDumpMode {
		t.Fatal("no switches given should leave flags false")
	}
}

func TestParseAllSwitches(t *testing.T) {
	cfg, err := Parse([]string{
		`data\*.emobs`, "/s", "/a", "/t", "/th", "/h", "/o:out.txt", "/f:rename.txt",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.SearchSubdirs || !cfg.AppendMode || !cfg.TLCMode || !cfg.TLCHierarchyMode || !cfg.HexDumpMode {
		t.Fatalf("expected all switches set, got %+v", cfg)
	}
	if cfg.OutputFile != "out.txt" {
		t.Fatalf("OutputFile = %q, want out.txt", cfg.OutputFile)
	}
	if cfg.RenameMapFile != "rename.txt" {
		t.Fatalf("RenameMapFile = %q, want rename.txt", cfg.RenameMapFile)
	}
}

func TestParseNoSwitchSuppressesDataMode(t *testing.T) {
	cfg, err := Parse([]string{`*.emobs`, "/no"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataMode {
		t.Fatal("/no should clear DataMode")
	}
}

func TestParseSwitchesAreCaseInsensitive(t *testing.T) {
	cfg, err := Parse([]string{`*.emobs`, "/S", "/A"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.SearchSubdirs || !cfg.AppendMode {
		t.Fatal("uppercase switch forms should be accepted")
	}
}

func TestParseMissingArgumentsIsInvalid(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for no arguments")
	}
}

func TestParseUnrecognizedSwitchIsInvalid(t *testing.T) {
	if _, err := Parse([]string{`*.emobs`, "/bogus"}); err == nil {
		t.Fatal("expected error for an unrecognized switch")
	}
}
