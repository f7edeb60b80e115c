package mediaref

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/tobyhaddon/emobsread/internal/emobs"
)

func TestLoadRenameMapUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rename.txt")
	if err := os.WriteFile(path, []byte("Old.mp4\tNew.mp4\nAnother.mp4\tRenamed.mp4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rm, err := LoadRenameMap(path)
	if err != nil {
		t.Fatal(err)
	}
	mapped, ok := rm.lookup("old.mp4")
	if !ok || mapped != "New.mp4" {
		t.Fatalf("lookup(old.mp4) = %q, %v, want New.mp4, true (case-insensitive)", mapped, ok)
	}
}

func TestLoadRenameMapUTF16LEWithBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rename.txt")
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.Bytes([]byte("Old.mp4\tNew.mp4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatal(err)
	}

	rm, err := LoadRenameMap(path)
	if err != nil {
		t.Fatal(err)
	}
	mapped, ok := rm.lookup("OLD.MP4")
	if !ok || mapped != "New.mp4" {
		t.Fatalf("lookup = %q, %v, want New.mp4, true", mapped, ok)
	}
}

func TestResolverFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := NewResolver([]string{dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := &emobs.FileRef{Name: "Clip.mp4"}
	r.Resolve(ref)
	if ref.Status != StatusFound {
		t.Fatalf("status = %q, want Found", ref.Status)
	}
}

func TestResolverMissing(t *testing.T) {
	dir := t.TempDir()
	r, err := NewResolver([]string{dir}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := &emobs.FileRef{Name: "Nope.mp4"}
	r.Resolve(ref)
	if ref.Status != StatusMissing {
		t.Fatalf("status = %q, want Missing", ref.Status)
	}
}

func TestResolverRenamed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "New.mp4"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	rm := &RenameMap{entries: map[string]string{"old.mp4": "New.mp4"}}
	r, err := NewResolver([]string{dir}, rm)
	if err != nil {
		t.Fatal(err)
	}
	ref := &emobs.FileRef{Name: "Old.mp4"}
	r.Resolve(ref)
	if ref.Status != StatusRenamed || ref.Name != "New.mp4" {
		t.Fatalf("ref = %+v, want Renamed/New.mp4", ref)
	}
}

func TestResolveNilRefIsNoop(t *testing.T) {
	r, _ := NewResolver(nil, nil)
	r.Resolve(nil) // must not panic
}
