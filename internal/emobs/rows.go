package emobs

import (
	"strconv"
	"strings"
)

// RowType identifies the kind of annotation a Row carries.
type RowType int

// Row type values; string forms match the row_type column literals exactly.
const (
	RowUnknown RowType = iota
	RowPoint2DLeft
	RowPoint2DRight
	RowMeasurement3D
	RowPoint3DLeft
	RowPoint3DRight
)

// String renders the row_type column literal.
func (t RowType) String() string {
	switch t {
	case RowPoint2DLeft:
		return "2DPoint Left"
	case RowPoint2DRight:
		return "2DPoint Right"
	case RowMeasurement3D:
		return "3D Measurement"
	case RowPoint3DLeft, RowPoint3DRight:
		return "3DPoint"
	default:
		return "Unknown"
	}
}

// Point is an X/Y pair projected from a CPT.
type Point struct {
	X, Y float64
}

// FileRef is the File/Frame pair attached to one side of a row. Status is
// left empty by the projector; internal/mediaref fills it in during the
// cross-reference pass.
type FileRef struct {
	Name   string
	Status string
	Frame  int32
}

// Row is one line of the output table (the 26-column schema), built
// by RowProjector from an EBS tree and its IDA children. A nil FileRef,
// Point, or Length pointer marshals to empty columns.
type Row struct {
	Number     int
	PathEMObs  string
	FileEMObs  string
	OpCode     string
	Type       RowType
	Period     string
	Path       string
	Left       *FileRef
	PointLeft1 *Point
	PointLeft2 *Point
	Right      *FileRef
	PointRight1 *Point
	PointRight2 *Point
	Length     *float64
	Family     string
	Genus      string
	Species    string
	Count      int
}

// RowProjector walks one EBS tree and its IDAs and emits a linear row
// stream, assigning a monotonic row number starting at 1 (or continuing
// from a prior count when appending to an existing list).
type RowProjector struct {
	sink Sink
}

// NewRowProjector builds a projector reporting diagnostics (unparseable
// counts, PDL camera-pairing violations) to sink. A nil sink is replaced
// with NoopSink.
func NewRowProjector(sink Sink) *RowProjector {
	if sink == nil {
		sink = NoopSink{}
	}
	return &RowProjector{sink: sink}
}

// Project returns the rows for file, numbered starting at startRow (pass 1
// for a fresh list, or len(existing)+1 to append).
func (rp *RowProjector) Project(file *File, startRow int) []Row {
	if startRow < 1 {
		startRow = 1
	}
	var rows []Row
	if file == nil {
		return rows
	}

	op := ""
	pictureDir := ""
	if file.EBS != nil {
		pictureDir = file.EBS.PictureDirectory
		if file.EBS.CIN != nil {
			op = file.EBS.CIN.Values.At(0, 0)
		}
	}

	next := startRow
	for _, ida := range file.IDAs {
		outer := ida.FRA
		for _, rec := range ida.Annotations() {
			row := Row{
				Number: next,
				OpCode: op,
				Period: ida.Period,
				Path:   pictureDir,
			}
			next++
			rp.fillTaxonomy(&row, rec.matValues())

			switch r := rec.(type) {
			case *PDA:
				rp.projectPDA(&row, outer, r)
			case *PDL:
				rp.projectPDL(&row, outer, r)
			case *PD3:
				rp.projectPD3(&row, outer, r)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (rp *RowProjector) fillTaxonomy(row *Row, mat *Mat) {
	if mat == nil {
		row.Count = 1
		return
	}
	row.Family = mat.At(0, 0)
	row.Genus = mat.At(1, 0)
	row.Species = mat.At(2, 0)

	countStr := strings.TrimSpace(mat.At(4, 0))
	if countStr == "" {
		row.Count = 1
		return
	}
	n, err := strconv.Atoi(countStr)
	if err != nil {
		row.Count = -1
		rp.sink.Warn("row %d: count %q is not an integer", row.Number, countStr)
		return
	}
	row.Count = n
}

func frameRef(f *FRA) *FileRef {
	if f == nil {
		return nil
	}
	return &FileRef{Name: f.MediaFile, Frame: f.Frame}
}

func pointOf(cpt *CPT) *Point {
	if cpt == nil {
		return nil
	}
	return &Point{X: cpt.X, Y: cpt.Y}
}

func (rp *RowProjector) projectPDA(row *Row, outer *FRA, rec *PDA) {
	if outer != nil && outer.Camera == 0 {
		row.Type = RowPoint2DLeft
		row.Left = frameRef(outer)
		row.PointLeft1 = pointOf(rec.Point)
		return
	}
	row.Type = RowPoint2DRight
	row.Right = frameRef(outer)
	row.PointRight1 = pointOf(rec.Point)
}

func (rp *RowProjector) projectPDL(row *Row, outer *FRA, rec *PDL) {
	row.Type = RowMeasurement3D
	if outer == nil || rec.FRA == nil || outer.Camera != 0 || rec.FRA.Camera != 1 {
		rp.sink.Warn("row %d: PDL camera assertion violated (outer=%s inner=%s)", row.Number, cameraString(outer), cameraString(rec.FRA))
	}
	row.Left = frameRef(outer)
	row.PointLeft1 = pointOf(rec.P1)
	row.PointLeft2 = pointOf(rec.P2)
	row.Right = frameRef(rec.FRA)
	row.PointRight1 = pointOf(rec.P3)
	row.PointRight2 = pointOf(rec.P4)
}

// projectPD3 preserves an observed quirk: when the outer IDA's FRA is the
// right camera, the right side's File/Frame come from the PD3's own FRA
// rather than the outer IDA's FRA. This is not second-guessed here.
func (rp *RowProjector) projectPD3(row *Row, outer *FRA, rec *PD3) {
	if outer != nil && outer.Camera == 1 {
		row.Type = RowPoint3DRight
		row.Right = frameRef(rec.FRA)
		row.PointRight1 = pointOf(rec.P1)
		row.PointRight2 = pointOf(rec.P2)
		return
	}
	row.Type = RowPoint3DLeft
	row.Left = frameRef(outer)
	row.PointLeft1 = pointOf(rec.P1)
	row.PointLeft2 = pointOf(rec.P2)
}

func cameraString(f *FRA) string {
	if f == nil {
		return "<nil>"
	}
	return strconv.FormatInt(int64(f.Camera), 10)
}
