// Package mediaref resolves the media file named by each row's FileRef
// against the files actually present near the EMObs source file, applying
// an optional rename map first. It sets FileRef.Status to one of "Found",
// "Missing", or "Renamed".
package mediaref

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/tobyhaddon/emobsread/internal/emobs"
)

const (
	StatusFound    = "Found"
	StatusMissing  = "Missing"
	StatusRenamed  = "Renamed"
)

// RenameMap is a case-insensitive old-name -> new-name lookup loaded from
// a tab-delimited text file: one "old_name<TAB>new_name" pair per line.
type RenameMap struct {
	entries map[string]string // lowercased old name -> new name
}

// LoadRenameMap reads path, sniffing for a UTF-16 BOM before falling back
// to UTF-8 (the format the original emits when writing the map via
// std::wofstream on Windows).
func LoadRenameMap(path string) (*RenameMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mediaref: cannot read rename map %q: %w", path, err)
	}

	text, err := decodeRenameMap(raw)
	if err != nil {
		return nil, fmt.Errorf("mediaref: cannot decode rename map %q: %w", path, err)
	}

	rm := &RenameMap{entries: make(map[string]string)}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		cols := strings.SplitN(line, "\t", 2)
		if len(cols) != 2 {
			continue
		}
		rm.entries[strings.ToLower(cols[0])] = cols[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mediaref: cannot scan rename map %q: %w", path, err)
	}
	return rm, nil
}

// decodeRenameMap sniffs for a UTF-16LE/BE byte-order mark and decodes
// accordingly, otherwise treats raw as UTF-8.
func decodeRenameMap(raw []byte) (string, error) {
	switch {
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		return string(out), err
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		return string(out), err
	default:
		return string(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})), nil
	}
}

// lookup returns the mapped name for name, and whether a mapping existed.
func (rm *RenameMap) lookup(name string) (string, bool) {
	if rm == nil {
		return name, false
	}
	mapped, ok := rm.entries[strings.ToLower(name)]
	return mapped, ok
}

// Resolver checks referenced media names against the files under a root
// directory (and its subdirectories).
type Resolver struct {
	renames *RenameMap
	present map[string]bool // lowercased base name -> exists
}

// NewResolver indexes every file under roots (searched recursively) for
// fast case-insensitive lookup, and applies renames (which may be nil) to
// each name it resolves.
func NewResolver(roots []string, renames *RenameMap) (*Resolver, error) {
	r := &Resolver{renames: renames, present: make(map[string]bool)}
	for _, root := range roots {
		if root == "" {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				r.present[strings.ToLower(d.Name())] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("mediaref: cannot index %q: %w", root, err)
		}
	}
	return r, nil
}

// Resolve fills in ref.Status (and rewrites ref.Name if a rename mapping
// applies). A nil ref is left untouched.
func (r *Resolver) Resolve(ref *emobs.FileRef) {
	if ref == nil || ref.Name == "" {
		return
	}
	name := ref.Name
	renamed := false
	if mapped, ok := r.renames.lookup(name); ok {
		name = mapped
		renamed = true
	}

	if r.present[strings.ToLower(name)] {
		ref.Name = name
		if renamed {
			ref.Status = StatusRenamed
		} else {
			ref.Status = StatusFound
		}
		return
	}

	ref.Name = name
	ref.Status = StatusMissing
}
