package emobs

import (
	"errors"
	"fmt"
	"strings"
)

// TlcRecord is one line of the flat TLC listing: the discovered record's
// position and, for FRA records, a transient decode of camera/frame used
// purely for display.
type TlcRecord struct {
	Row            int
	ContainingPath string
	SourceFile     string
	Offset         int
	TLC            string
	Version        int
	Diag           [3]string
}

// ListTLCs walks c from its current seekPos via the scanner alone, emitting
// one TlcRecord per TLC encountered regardless of tree structure. When the
// TLC is FRA it transiently invokes parseFRA (after snapping readPos to
// lastTLCPos) to fill the diagnostic strings with camera index and frame
// index; this does not disturb the ongoing scan, which tracks position via
// seekPos, not readPos.
func ListTLCs(c *Cursor, containingPath, sourceFile string) ([]TlcRecord, error) {
	var out []TlcRecord
	row := 1
	parser := NewRecordParser(c, NoopSink{})

	for {
		tlc, _, err := c.NextTLC()
		if errors.Is(err, ErrNoMoreRecords) {
			return out, nil
		}
		if err != nil {
			return out, err
		}

		rec := TlcRecord{
			Row:            row,
			ContainingPath: containingPath,
			SourceFile:     sourceFile,
			Offset:         c.LastTLCPos(),
			TLC:            tlc,
		}
		if v, ok := c.ByteAt(c.LastTLCPos() + 3); ok {
			rec.Version = int(v)
		}

		if tlc == "FRA" {
			c.SnapReadToLastTLC()
			if fra, err := parser.parseFRA(); err == nil {
				rec.Diag[0] = fmt.Sprintf("camera=%d", fra.Camera)
				rec.Diag[1] = fmt.Sprintf("frame=%d", fra.Frame)
			}
		}

		out = append(out, rec)
		row++
	}
}

// TLCHierarchy renders file's record tree as an indented outline: one TLC
// tag per line, two spaces of indent per nesting level. EBS's CIN and PTN
// children are indented under it; each IDA's FRA and its PDA/PDL/PD3
// children (and, in turn, the CPT and FRA nested inside those) are indented
// under the IDA. An unrecognized tag that stopped the top-level driver
// (File.UnknownTrailingTLC) is appended as its own top-level line; a
// recognized trailer (CMS/PER/CCC) is not recorded and does not appear.
func TLCHierarchy(file *File) string {
	var b strings.Builder
	if file.EBS != nil {
		writeHierarchyLine(&b, 0, "EBS")
		writeHierarchyLine(&b, 1, "CIN")
		writeHierarchyLine(&b, 1, "PTN")
	}
	for _, ida := range file.IDAs {
		writeHierarchyLine(&b, 0, "IDA")
		writeHierarchyLine(&b, 1, "FRA")
		for range ida.PDAs {
			writeHierarchyLine(&b, 1, "PDA")
			writeHierarchyLine(&b, 2, "CPT")
		}
		for range ida.PDLs {
			writeHierarchyLine(&b, 1, "PDL")
			writeHierarchyLine(&b, 2, "CPT")
			writeHierarchyLine(&b, 2, "CPT")
			writeHierarchyLine(&b, 2, "CPT")
			writeHierarchyLine(&b, 2, "CPT")
			writeHierarchyLine(&b, 2, "FRA")
		}
		for range ida.PD3s {
			writeHierarchyLine(&b, 1, "PD3")
			writeHierarchyLine(&b, 2, "CPT")
			writeHierarchyLine(&b, 2, "CPT")
			writeHierarchyLine(&b, 2, "FRA")
		}
	}
	if file.UnknownTrailingTLC != "" {
		writeHierarchyLine(&b, 0, file.UnknownTrailingTLC)
	}
	return b.String()
}

func writeHierarchyLine(b *strings.Builder, depth int, tlc string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(tlc)
	b.WriteByte('\n')
}

// HexDumpOptions configures the hex-dump pretty-printer's page geometry.
type HexDumpOptions struct {
	Width       int
	RowsPerPage int
}

// DefaultHexDumpOptions returns the standard layout: 16 bytes per row, 48
// rows per page.
func DefaultHexDumpOptions() HexDumpOptions {
	return HexDumpOptions{Width: 16, RowsPerPage: 48}
}

// HexDump renders buf in rows of Width bytes, RowsPerPage rows per page,
// pages separated by a form feed. Each row is an 8-hex-digit offset, the
// row's bytes in two-hex-digit groups (space separated, padded when
// shorter), two spaces, and the ASCII rendering (non-printable as '.').
func HexDump(buf []byte, opts HexDumpOptions) string {
	if opts.Width <= 0 {
		opts.Width = 16
	}
	if opts.RowsPerPage <= 0 {
		opts.RowsPerPage = 48
	}

	var b strings.Builder
	rowsInPage := 0
	for offset := 0; offset < len(buf); offset += opts.Width {
		end := offset + opts.Width
		if end > len(buf) {
			end = len(buf)
		}
		chunk := buf[offset:end]

		fmt.Fprintf(&b, "%08X ", offset)
		for i := 0; i < opts.Width; i++ {
			if i < len(chunk) {
				fmt.Fprintf(&b, "%02X ", chunk[i])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString(" ")
		for _, byt := range chunk {
			if byt >= 0x20 && byt < 0x7F {
				b.WriteByte(byt)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')

		rowsInPage++
		if rowsInPage == opts.RowsPerPage && end < len(buf) {
			b.WriteByte('\x0C')
			rowsInPage = 0
		}
	}
	return b.String()
}
