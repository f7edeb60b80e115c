package emobs

import "testing"

func idaWith(fra *FRA, period string, recs ...annotationRecord) *IDA {
	ida := &IDA{FRA: fra, Period: period}
	for _, r := range recs {
		switch v := r.(type) {
		case *PDA:
			ida.PDAs = append(ida.PDAs, v)
		case *PDL:
			ida.PDLs = append(ida.PDLs, v)
		case *PD3:
			ida.PD3s = append(ida.PD3s, v)
		}
	}
	return ida
}

// TestRowCountIdentity is testable property 4: the row count equals the
// total number of PDA+PDL+PD3 records across every IDA in the file.
func TestRowCountIdentity(t *testing.T) {
	fraLeft := &FRA{Camera: 0, Frame: 1, MediaFile: "L.mp4"}
	pda1 := &PDA{Point: &CPT{X: 1, Y: 1}}
	pda2 := &PDA{Point: &CPT{X: 2, Y: 2}}
	pdl := &PDL{P1: &CPT{}, P2: &CPT{}, P3: &CPT{}, P4: &CPT{}, FRA: &FRA{Camera: 1}}

	file := &File{
		EBS: &EBS{},
		IDAs: []*IDA{
			idaWith(fraLeft, "P1", pda1, pda2),
			idaWith(fraLeft, "P2", pdl),
		},
	}
	rows := NewRowProjector(NoopSink{}).Project(file, 1)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (2 PDA + 1 PDL), got %d", len(rows))
	}
	if rows[0].Number != 1 || rows[1].Number != 2 || rows[2].Number != 3 {
		t.Fatalf("expected monotonic 1,2,3 numbering, got %d,%d,%d", rows[0].Number, rows[1].Number, rows[2].Number)
	}
}

// TestRowCountIdentityAppendsFromStartRow checks the startRow continuation
// behavior used when appending a second file's rows to an existing list.
func TestRowCountIdentityAppendsFromStartRow(t *testing.T) {
	fra := &FRA{Camera: 0, Frame: 1, MediaFile: "L.mp4"}
	file := &File{EBS: &EBS{}, IDAs: []*IDA{idaWith(fra, "P1", &PDA{Point: &CPT{}})}}
	rows := NewRowProjector(NoopSink{}).Project(file, 5)
	if len(rows) != 1 || rows[0].Number != 5 {
		t.Fatalf("expected a single row numbered 5, got %+v", rows)
	}
}

// TestRowTypeCoherence is testable property 5: a 2DPoint row has only its
// own side populated, and a 3D Measurement row has both sides populated.
func TestRowTypeCoherence(t *testing.T) {
	left := &FRA{Camera: 0, Frame: 7, MediaFile: "L.mp4"}
	right := &FRA{Camera: 1, Frame: 7, MediaFile: "R.mp4"}

	leftRows := NewRowProjector(NoopSink{}).Project(&File{EBS: &EBS{}, IDAs: []*IDA{
		idaWith(left, "P", &PDA{Point: &CPT{X: 1, Y: 2}}),
	}}, 1)
	lr := leftRows[0]
	if lr.Type != RowPoint2DLeft {
		t.Fatalf("expected 2DPoint Left, got %v", lr.Type)
	}
	if lr.Left == nil || lr.PointLeft1 == nil {
		t.Fatal("left side must be populated")
	}
	if lr.Right != nil || lr.PointRight1 != nil || lr.PointRight2 != nil {
		t.Fatal("right side must be empty for a left 2D point row")
	}

	rightRows := NewRowProjector(NoopSink{}).Project(&File{EBS: &EBS{}, IDAs: []*IDA{
		idaWith(right, "P", &PDA{Point: &CPT{X: 3, Y: 4}}),
	}}, 1)
	rr := rightRows[0]
	if rr.Type != RowPoint2DRight {
		t.Fatalf("expected 2DPoint Right, got %v", rr.Type)
	}
	if rr.Right == nil || rr.PointRight1 == nil {
		t.Fatal("right side must be populated")
	}
	if rr.Left != nil || rr.PointLeft1 != nil {
		t.Fatal("left side must be empty for a right 2D point row")
	}

	measRows := NewRowProjector(NoopSink{}).Project(&File{EBS: &EBS{}, IDAs: []*IDA{
		idaWith(left, "P", &PDL{
			P1: &CPT{X: 1, Y: 1}, P2: &CPT{X: 2, Y: 2},
			P3: &CPT{X: 3, Y: 3}, P4: &CPT{X: 4, Y: 4},
			FRA: right,
		}),
	}}, 1)
	mr := measRows[0]
	if mr.Type != RowMeasurement3D {
		t.Fatalf("expected 3D Measurement, got %v", mr.Type)
	}
	if mr.Left == nil || mr.Right == nil || mr.PointLeft1 == nil || mr.PointLeft2 == nil || mr.PointRight1 == nil || mr.PointRight2 == nil {
		t.Fatal("a measurement row must have both sides populated")
	}
}

func TestFillTaxonomyEmptyCountDefaultsToOne(t *testing.T) {
	row := &Row{}
	rp := NewRowProjector(NoopSink{})
	mat := &Mat{DimX: 5, DimY: 1, Values: [][]string{{"F"}, {"G"}, {"S"}, {""}, {""}}}
	rp.fillTaxonomy(row, mat)
	if row.Count != 1 {
		t.Fatalf("Count = %d, want 1 for an empty count field", row.Count)
	}
}

func TestFillTaxonomyUnparseableCountSetsNegativeOne(t *testing.T) {
	row := &Row{}
	rp := NewRowProjector(NoopSink{})
	mat := &Mat{DimX: 5, DimY: 1, Values: [][]string{{"F"}, {"G"}, {"S"}, {""}, {"many"}}}
	rp.fillTaxonomy(row, mat)
	if row.Count != -1 {
		t.Fatalf("Count = %d, want -1 for an unparseable count field", row.Count)
	}
}

// TestPD3RightCameraUsesOwnFRA pins the documented quirk: when the outer
// IDA is the right camera, the right-side File/Frame for a PD3 row come
// from the PD3's own FRA, not the outer IDA's.
func TestPD3RightCameraUsesOwnFRA(t *testing.T) {
	outer := &FRA{Camera: 1, Frame: 10, MediaFile: "Outer.mp4"}
	own := &FRA{Camera: 1, Frame: 99, MediaFile: "Own.mp4"}
	file := &File{EBS: &EBS{}, IDAs: []*IDA{
		idaWith(outer, "P", &PD3{P1: &CPT{X: 1, Y: 1}, P2: &CPT{X: 2, Y: 2}, FRA: own}),
	}}
	rows := NewRowProjector(NoopSink{}).Project(file, 1)
	row := rows[0]
	if row.Type != RowPoint3DRight {
		t.Fatalf("expected 3DPoint (right), got %v", row.Type)
	}
	if row.Right == nil || row.Right.Name != "Own.mp4" || row.Right.Frame != 99 {
		t.Fatalf("expected right side sourced from the PD3's own FRA, got %+v", row.Right)
	}
}
