package emobs

// CPT is a coordinate: a pair of doubles.
type CPT struct {
	X, Y float64
}

// FRA is a frame reference: camera side, frame index, and media filename.
// Camera 0 is the left-of-pair by convention, camera 1 the right; values
// outside {0,1} are logged as suspicious but not fatal.
type FRA struct {
	Camera    int32
	Frame     int32
	MediaFile string
}

// CIN holds the info-field titles and values (parallel MATs).
type CIN struct {
	Titles *Mat
	Values *Mat
}

// PTN holds the collection column titles and a trailing opaque int32
// (observed as 86).
type PTN struct {
	Titles *Mat
	Data1  int32
}

// EBS is the file header: picture directory, one CIN, one PTN. Exactly one
// EBS exists per file and it is always the first record.
type EBS struct {
	Version          byte
	PictureDirectory string
	CIN              *CIN
	PTN              *PTN
}

// PDA is a 2D point: one CPT plus an annotation MAT. Opaque holds the 16
// trailing bytes present only when Version == 1.
type PDA struct {
	Version byte
	Point   *CPT
	Values  *Mat
	Opaque  [16]byte
	HasTail bool
}

func (p *PDA) matValues() *Mat { return p.Values }

// PDL is a 3D measurement: two CPTs in the left camera frame, two in the
// right, and the right-side FRA. Sentinel1/Sentinel2 are both expected to
// equal 2; a different value is a non-fatal diagnostic.
type PDL struct {
	Sentinel1 int32
	P1, P2    *CPT
	Sentinel2 int32
	P3, P4    *CPT
	FRA       *FRA
	Values    *Mat
}

func (p *PDL) matValues() *Mat { return p.Values }

// PD3 is a 3D point: two CPTs plus the FRA of the side the point was taken
// from and an annotation MAT.
type PD3 struct {
	P1, P2 *CPT
	FRA    *FRA
	Values *Mat
}

func (p *PD3) matValues() *Mat { return p.Values }

// annotationRecord is the closed set of record types an IDA carries: PDA,
// PDL, and PD3. The row projector dispatches on the concrete type via a
// type switch; this interface only exists to let it flatten the three
// slices into one ordered walk.
type annotationRecord interface {
	matValues() *Mat
}

// IDA is an observation group tied to a frame: the outer FRA, the PDA/PDL/
// PD3 arrays in file order, a named period, and two 16-byte opaque blocks of
// unknown semantics captured verbatim.
type IDA struct {
	FRA     *FRA
	PDAs    []*PDA
	Opaque1 [16]byte
	Period  string
	PDLs    []*PDL
	PD3s    []*PD3
	Opaque2 [16]byte
}

// Annotations returns the IDA's PDAs, PDLs, and PD3s concatenated in that
// order, matching the row projector's required walk order.
func (ida *IDA) Annotations() []annotationRecord {
	out := make([]annotationRecord, 0, len(ida.PDAs)+len(ida.PDLs)+len(ida.PD3s))
	for _, r := range ida.PDAs {
		out = append(out, r)
	}
	for _, r := range ida.PDLs {
		out = append(out, r)
	}
	for _, r := range ida.PD3s {
		out = append(out, r)
	}
	return out
}

// File is the result of parsing one EMObs file: the root EBS plus the
// ordered list of IDAs obtained from the top-level driver. A partial IDA
// list (parsing stopped on an unknown trailing record) is acceptable; File
// still records what stopped it.
type File struct {
	EBS  *EBS
	IDAs []*IDA

	// UnknownTrailingTLC, when non-empty, is the TLC that made the
	// top-level driver stop without a recognized trailer (CMS/PER/CCC).
	UnknownTrailingTLC    string
	UnknownTrailingOffset int
	UnknownTrailingDump   string
}
