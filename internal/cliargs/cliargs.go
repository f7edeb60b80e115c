// Package cliargs parses emobsread's DOS-style command-line surface: a
// positional file-or-wildcard argument plus /s, /o, /a, /t, /th, /h, /no,
// /f switches. The surface and flag names match the tool this batch job
// reimplements and are not renamed to a more idiomatic flag style.
package cliargs

import (
	"fmt"
	"strings"
)

// Config is the parsed command line.
type Config struct {
	// SearchPath is the directory portion of the positional argument.
	SearchPath string
	// FileSpec is the filename (or wildcard pattern) portion.
	FileSpec string

	SearchSubdirs bool
	AppendMode    bool
	TLCMode       bool
	TLCHierarchyMode bool
	HexDumpMode   bool
	DataMode      bool

	// OutputFile is the /o:<path> override, or "" if unset.
	OutputFile string
	// RenameMapFile is the /f:<path> override, or "" if unset.
	RenameMapFile string
}

// ParseError reports an invalid or missing argument. The driver exits 1
// on this error, per the CLI's documented exit codes.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "cliargs: " + e.Reason }

// Parse interprets argv (excluding the program name, i.e. os.Args[1:]).
func Parse(argv []string) (*Config, error) {
	if len(argv) < 1 {
		return nil, &ParseError{Reason: "missing file spec argument"}
	}

	cfg := &Config{DataMode: true}
	cfg.SearchPath, cfg.FileSpec = splitFileSpec(argv[0])
	if cfg.FileSpec == "" {
		return nil, &ParseError{Reason: "file spec argument has no filename component"}
	}

	for _, arg := range argv[1:] {
		lower := strings.ToLower(arg)
		switch {
		case lower == "/s":
			cfg.SearchSubdirs = true
		case lower == "/a":
			cfg.AppendMode = true
		case lower == "/th":
			cfg.TLCHierarchyMode = true
		case lower == "/t":
			cfg.TLCMode = true
		case lower == "/h":
			cfg.HexDumpMode = true
		case lower == "/no":
			cfg.DataMode = false
		case strings.HasPrefix(lower, "/o:"):
			cfg.OutputFile = arg[len("/o:"):]
		case strings.HasPrefix(lower, "/f:"):
			cfg.RenameMapFile = arg[len("/f:"):]
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("unrecognized argument %q", arg)}
		}
	}

	return cfg, nil
}

// splitFileSpec separates a positional argument like "path\*.emobs" into
// its directory and filename/wildcard parts, the way the original splits
// argv[1] via std::filesystem::path's parent_path/filename. Both '/' and
// '\' are accepted as separators regardless of host OS, since EMObs file
// specs routinely arrive in DOS form.
func splitFileSpec(arg string) (dir, spec string) {
	i := strings.LastIndexAny(arg, `/\`)
	if i < 0 {
		return "", arg
	}
	return arg[:i], arg[i+1:]
}
