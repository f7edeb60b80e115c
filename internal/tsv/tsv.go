// Package tsv writes the emobsread row schema as a tab-delimited text file:
// a header row followed by one line per projected row, with any literal tab
// inside a field escaped to the literal sequence "<Tab>".
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tobyhaddon/emobsread/internal/emobs"
)

// Header is the 26-column row schema, in column order.
var Header = []string{
	"row", "path_emobs", "file_emobs", "op_code", "row_type", "period", "path",
	"file_left", "file_left_status", "frame_left",
	"point_lx1", "point_ly1", "point_lx2", "point_ly2",
	"file_right", "file_right_status", "frame_right",
	"point_rx1", "point_ry1", "point_rx2", "point_ry2",
	"length", "family", "genus", "species", "count",
}

// EscapeTab replaces every literal tab in s with "<Tab>". Idempotent:
// applying it to an already-escaped string is a no-op, since the
// replacement introduces no further tab characters.
func EscapeTab(s string) string {
	return strings.ReplaceAll(s, "\t", "<Tab>")
}

// Writer appends rows to an underlying io.Writer, escaping tabs per field.
type Writer struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewWriter wraps w. Call WriteHeader before the first WriteRow unless
// appending to a file that already carries one.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Open opens path for writing: truncating it when append is false, or
// appending to it when append is true. Open writes no header itself; when
// appending to a non-empty file, the returned Writer's WriteHeader is a
// no-op, since a header is assumed already present.
func Open(path string, appendMode bool) (*Writer, *os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("tsv: cannot open %q: %w", path, err)
	}

	w := NewWriter(f)
	if appendMode {
		if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
			w.wroteHeader = true
		}
	}
	return w, f, nil
}

// WriteHeader writes the column header line, if it has not already been
// written (or skipped via Open in append mode).
func (w *Writer) WriteHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.writeFields(Header)
}

// WriteRow writes one data line for row.
func (w *Writer) WriteRow(row emobs.Row) error {
	fields := []string{
		strconv.Itoa(row.Number),
		row.PathEMObs,
		row.FileEMObs,
		row.OpCode,
		row.Type.String(),
		row.Period,
		row.Path,
		fileRefName(row.Left),
		fileRefStatus(row.Left),
		fileRefFrame(row.Left),
		pointField(row.PointLeft1, "x"),
		pointField(row.PointLeft1, "y"),
		pointField(row.PointLeft2, "x"),
		pointField(row.PointLeft2, "y"),
		fileRefName(row.Right),
		fileRefStatus(row.Right),
		fileRefFrame(row.Right),
		pointField(row.PointRight1, "x"),
		pointField(row.PointRight1, "y"),
		pointField(row.PointRight2, "x"),
		pointField(row.PointRight2, "y"),
		lengthField(row.Length),
		row.Family,
		row.Genus,
		row.Species,
		strconv.Itoa(row.Count),
	}
	return w.writeFields(fields)
}

// Flush flushes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) writeFields(fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := w.w.WriteString("\t"); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(EscapeTab(f)); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString("\n")
	return err
}

func fileRefName(ref *emobs.FileRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func fileRefStatus(ref *emobs.FileRef) string {
	if ref == nil {
		return ""
	}
	return ref.Status
}

func fileRefFrame(ref *emobs.FileRef) string {
	if ref == nil {
		return ""
	}
	return strconv.FormatInt(int64(ref.Frame), 10)
}

func pointField(p *emobs.Point, axis string) string {
	if p == nil {
		return ""
	}
	if axis == "x" {
		return strconv.FormatFloat(p.X, 'g', -1, 64)
	}
	return strconv.FormatFloat(p.Y, 'g', -1, 64)
}

func lengthField(l *float64) string {
	if l == nil {
		return ""
	}
	return strconv.FormatFloat(*l, 'g', -1, 64)
}
