// Command emobsread scans EMObs binary annotation files matched by a
// file spec and emits a tab-delimited row table, and optionally a TLC
// listing, a TLC hierarchy listing, and a hex dump, for each.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tobyhaddon/emobsread/internal/cliargs"
	"github.com/tobyhaddon/emobsread/internal/config"
	"github.com/tobyhaddon/emobsread/internal/diagsink"
	"github.com/tobyhaddon/emobsread/internal/emobs"
	"github.com/tobyhaddon/emobsread/internal/fswalk"
	"github.com/tobyhaddon/emobsread/internal/mediaref"
	"github.com/tobyhaddon/emobsread/internal/tsv"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	if len(argv) < 1 {
		printUsage()
		return 1
	}

	cfg, err := cliargs.Parse(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		printUsage()
		return 1
	}
	if cfg.FileSpec == "" {
		fmt.Fprintln(os.Stderr, "Error: invalid file spec. Please specify a valid search path and file pattern.")
		return 1
	}

	yamlCfg, err := config.Load(os.Getenv("EMOBSREAD_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	sink := diagsink.New(log.New(os.Stderr, "", log.LstdFlags))

	var rm *mediaref.RenameMap
	if cfg.RenameMapFile != "" {
		rm, err = mediaref.LoadRenameMap(cfg.RenameMapFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}

	matches, err := fswalk.Find(cfg.SearchPath, cfg.FileSpec, cfg.SearchSubdirs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "No files matched the given spec.")
		return 0
	}

	fileOuts, err := openOutputs(cfg, yamlCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer fileOuts.closeAll()

	rowNum := 1
	for _, path := range matches {
		rowNum = processFile(path, cfg, fileOuts, sink, rm, yamlCfg, rowNum)
	}
	return 0
}

func printUsage() {
	fmt.Println("Usage: emobsread <filespec> [/s] [/o:<outputfile>] [/a] [/t] [/th] [/h] [/no] [/f:<renamemap>]")
	fmt.Println("                  /s                 search sub-directories")
	fmt.Println("                  /o:<outputfile>    output to outputfile")
	fmt.Println("                  /a                 append to output file")
	fmt.Println("                  /t                 additionally export the TLC (three letter codes)")
	fmt.Println("                  /th                additionally export the TLCs in their hierarchy")
	fmt.Println("                  /h                 additionally dump file to hex in the output file")
	fmt.Println("                  /no                don't export the row data")
	fmt.Println("                  /f:<filemapping>   two column tab delimited file mapping media file names")
}

// fileOutputs holds the writers emobsread may produce, any subset of which may
// be nil when the corresponding mode was not requested.
type fileOutputs struct {
	rows  *tsv.Writer
	rowsF *os.File

	tlcList *os.File
	tlcHier *os.File
	hexDump *os.File
}

func (o *fileOutputs) closeAll() {
	for _, f := range []*os.File{o.rowsF, o.tlcList, o.tlcHier, o.hexDump} {
		if f != nil {
			f.Close()
		}
	}
}

func openOutputs(cfg *cliargs.Config, yamlCfg *config.Config) (*fileOutputs, error) {
	out := &fileOutputs{}

	if cfg.DataMode {
		path := cfg.OutputFile
		if path == "" {
			path = yamlCfg.OutputStems["data"]
		}
		w, f, err := tsv.Open(path, cfg.AppendMode)
		if err != nil {
			return nil, err
		}
		if err := w.WriteHeader(); err != nil {
			return nil, err
		}
		out.rows, out.rowsF = w, f
	}

	if cfg.TLCMode {
		f, err := openForMode(yamlCfg.OutputStems["tlclist"], cfg.AppendMode)
		if err != nil {
			return nil, err
		}
		out.tlcList = f
	}
	if cfg.TLCHierarchyMode {
		f, err := openForMode(yamlCfg.OutputStems["tlchierarchy"], cfg.AppendMode)
		if err != nil {
			return nil, err
		}
		out.tlcHier = f
	}
	if cfg.HexDumpMode {
		f, err := openForMode(yamlCfg.OutputStems["hexdump"], cfg.AppendMode)
		if err != nil {
			return nil, err
		}
		out.hexDump = f
	}
	return out, nil
}

func openForMode(path string, appendMode bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0o644)
}

// processFile parses one EMObs file and writes it to every requested
// output, returning the next row number to use for a following file.
func processFile(path string, cfg *cliargs.Config, out *fileOutputs, sink *diagsink.LogSink, rm *mediaref.RenameMap, yamlCfg *config.Config, rowNum int) int {
	fileSink := sink.ForFile(path)

	cursor, err := emobs.Open(path)
	if err != nil {
		fileSink.Warn("cannot open file: %v", err)
		return rowNum
	}

	if out.tlcList != nil {
		writeTLCList(cursor, path, out.tlcList)
	}
	if out.hexDump != nil {
		writeHexDump(cursor, out.hexDump, yamlCfg.HexDump)
	}
	if !cfg.DataMode && out.tlcHier == nil {
		return rowNum
	}

	parser := emobs.NewRecordParser(cursor, fileSink)
	file, err := parser.ParseFile()
	if err != nil {
		fileSink.Warn("parse failed: %v", err)
		return rowNum
	}

	if out.tlcHier != nil {
		fmt.Fprint(out.tlcHier, emobs.TLCHierarchy(file))
	}
	if !cfg.DataMode {
		return rowNum
	}

	rows := emobs.NewRowProjector(fileSink).Project(file, rowNum)
	if resolver, err := mediaRootResolver(path, yamlCfg.MediaRoots, rm); err == nil {
		for i := range rows {
			resolver.Resolve(rows[i].Left)
			resolver.Resolve(rows[i].Right)
		}
	} else {
		fileSink.Warn("cannot index media directory: %v", err)
	}

	fileName := filepath.Base(path)
	dirName := filepath.Dir(path)
	for _, row := range rows {
		row.PathEMObs = dirName
		row.FileEMObs = fileName
		if err := out.rows.WriteRow(row); err != nil {
			fileSink.Warn("cannot write row: %v", err)
			break
		}
	}
	out.rows.Flush()

	return rowNum + len(rows)
}

func mediaRootResolver(emobsPath string, extraRoots []string, rm *mediaref.RenameMap) (*mediaref.Resolver, error) {
	roots := append([]string{filepath.Dir(emobsPath)}, extraRoots...)
	return mediaref.NewResolver(roots, rm)
}

func writeTLCList(c *emobs.Cursor, sourceFile string, f *os.File) {
	recs, err := emobs.ListTLCs(c, filepath.Dir(sourceFile), filepath.Base(sourceFile))
	if err != nil {
		return
	}
	for _, r := range recs {
		fmt.Fprintf(f, "%d\t%s\t%s\t%08X\t%s\t%d\t%s\t%s\n",
			r.Row, r.ContainingPath, r.SourceFile, r.Offset, r.TLC, r.Version, r.Diag[0], r.Diag[1])
	}
}

func writeHexDump(c *emobs.Cursor, f *os.File, hd config.HexDumpConfig) {
	opts := emobs.HexDumpOptions{Width: hd.Width, RowsPerPage: hd.RowsPerPage}
	dump := emobs.HexDump(c.Bytes(), opts)
	fmt.Fprint(f, dump)
}
