package emobs

import "errors"

// RecordParser is a recursive-descent parser over the record tree: one
// function per known record type, each validating the TLC bytes and version
// byte before consuming the body in declared order.
type RecordParser struct {
	c    *Cursor
	sink Sink
}

// NewRecordParser builds a parser reading from c and reporting non-fatal
// diagnostics to sink. A nil sink is replaced with NoopSink.
func NewRecordParser(c *Cursor, sink Sink) *RecordParser {
	if sink == nil {
		sink = NoopSink{}
	}
	return &RecordParser{c: c, sink: sink}
}

// expectHeader reads and validates the 3 TLC bytes and version byte at the
// current read position against the record type's registered descriptor,
// logging a version-drift diagnostic when an accepted-but-non-primary
// version is seen.
func (p *RecordParser) expectHeader(expectedTLC string) (version byte, err error) {
	offset := p.c.ReadPos()
	tag, err := p.c.ReadFixed(3)
	if err != nil {
		return 0, asTruncated(expectedTLC+" tag", offset, err)
	}
	if string(tag) != expectedTLC {
		return 0, &UnexpectedTagError{Expected: expectedTLC, Found: string(tag), Offset: offset}
	}
	version, err = p.c.ReadByte()
	if err != nil {
		return 0, asTruncated(expectedTLC+" version", p.c.ReadPos(), err)
	}

	desc, ok := LookupRecordDescriptor(expectedTLC)
	if !ok || !desc.accepts(version) {
		return 0, &UnsupportedVersionError{Tag: expectedTLC, Version: version}
	}
	if version != desc.PrimaryVersion {
		p.sink.Warn("version drift: %s observed version %d (primary %d) at offset %d", expectedTLC, version, desc.PrimaryVersion, offset)
	}
	return version, nil
}

// ParseFile runs the top-level driver: parse the root EBS at offset 0, then
// obtain successive top-level TLCs via the scanner, dispatching IDA records
// into the result and stopping cleanly on a recognized trailer or an
// unknown tag.
func (p *RecordParser) ParseFile() (*File, error) {
	if err := p.c.SetReadPos(0); err != nil {
		return nil, err
	}
	ebs, err := p.parseEBS()
	if err != nil {
		return nil, err
	}
	file := &File{EBS: ebs}
	p.c.SnapSeekToRead()

	for {
		tlc, body, err := p.c.NextTLC()
		if errors.Is(err, ErrNoMoreRecords) {
			return file, nil
		}
		if err != nil {
			return file, err
		}
		p.c.SnapReadToLastTLC()

		switch tlc {
		case "IDA":
			ida, err := p.parseIDA()
			if err != nil {
				return file, err
			}
			file.IDAs = append(file.IDAs, ida)
			p.c.SnapSeekToRead()
		case "CMS", "PER", "CCC":
			return file, nil
		default:
			p.sink.Warn("unexpected top-level tag %q at offset %d", tlc, p.c.LastTLCPos())
			file.UnknownTrailingTLC = tlc
			file.UnknownTrailingOffset = p.c.LastTLCPos()
			file.UnknownTrailingDump = HexDump(body, DefaultHexDumpOptions())
			return file, nil
		}
	}
}

func (p *RecordParser) parseEBS() (*EBS, error) {
	version, err := p.expectHeader("EBS")
	if err != nil {
		return nil, err
	}
	dir, err := p.c.ReadWstring()
	if err != nil {
		return nil, err
	}
	cin, err := p.parseCIN()
	if err != nil {
		return nil, err
	}
	ptn, err := p.parsePTN()
	if err != nil {
		return nil, err
	}
	return &EBS{Version: version, PictureDirectory: dir, CIN: cin, PTN: ptn}, nil
}

func (p *RecordParser) parseCIN() (*CIN, error) {
	if _, err := p.expectHeader("CIN"); err != nil {
		return nil, err
	}
	titles, err := p.c.ReadMat()
	if err != nil {
		return nil, err
	}
	values, err := p.c.ReadMat()
	if err != nil {
		return nil, err
	}
	return &CIN{Titles: titles, Values: values}, nil
}

func (p *RecordParser) parsePTN() (*PTN, error) {
	if _, err := p.expectHeader("PTN"); err != nil {
		return nil, err
	}
	titles, err := p.c.ReadMat()
	if err != nil {
		return nil, err
	}
	data1, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	return &PTN{Titles: titles, Data1: data1}, nil
}

func (p *RecordParser) parseFRA() (*FRA, error) {
	if _, err := p.expectHeader("FRA"); err != nil {
		return nil, err
	}
	camera, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	frame, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	media, err := p.c.ReadWstring()
	if err != nil {
		return nil, err
	}
	if camera != 0 && camera != 1 {
		p.sink.Warn("FRA camera index %d outside {0,1} at offset %d", camera, p.c.LastTLCPos())
	}
	return &FRA{Camera: camera, Frame: frame, MediaFile: media}, nil
}

func (p *RecordParser) parseCPT() (*CPT, error) {
	if _, err := p.expectHeader("CPT"); err != nil {
		return nil, err
	}
	x, err := p.c.ReadF64()
	if err != nil {
		return nil, err
	}
	y, err := p.c.ReadF64()
	if err != nil {
		return nil, err
	}
	return &CPT{X: x, Y: y}, nil
}

func (p *RecordParser) parsePDA() (*PDA, error) {
	version, err := p.expectHeader("PDA")
	if err != nil {
		return nil, err
	}
	pt, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	values, err := p.c.ReadMat()
	if err != nil {
		return nil, err
	}
	pda := &PDA{Version: version, Point: pt, Values: values}
	if version == 1 {
		tail, err := p.c.ReadFixed(16)
		if err != nil {
			return nil, asTruncated("PDA trailing opaque bytes", p.c.ReadPos(), err)
		}
		copy(pda.Opaque[:], tail)
		pda.HasTail = true
	}
	return pda, nil
}

func (p *RecordParser) parsePDL() (*PDL, error) {
	if _, err := p.expectHeader("PDL"); err != nil {
		return nil, err
	}
	offset := p.c.LastTLCPos()

	s1, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	if s1 != 2 {
		p.sink.Warn("PDL sentinel1 %d != 2 at offset %d", s1, offset)
	}
	p1, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	p2, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	s2, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	if s2 != 2 {
		p.sink.Warn("PDL sentinel2 %d != 2 at offset %d", s2, offset)
	}
	p3, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	p4, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	fra, err := p.parseFRA()
	if err != nil {
		return nil, err
	}
	values, err := p.c.ReadMat()
	if err != nil {
		return nil, err
	}
	return &PDL{Sentinel1: s1, P1: p1, P2: p2, Sentinel2: s2, P3: p3, P4: p4, FRA: fra, Values: values}, nil
}

func (p *RecordParser) parsePD3() (*PD3, error) {
	if _, err := p.expectHeader("PD3"); err != nil {
		return nil, err
	}
	p1, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	p2, err := p.parseCPT()
	if err != nil {
		return nil, err
	}
	fra, err := p.parseFRA()
	if err != nil {
		return nil, err
	}
	values, err := p.c.ReadMat()
	if err != nil {
		return nil, err
	}
	return &PD3{P1: p1, P2: p2, FRA: fra, Values: values}, nil
}

func (p *RecordParser) parseIDA() (*IDA, error) {
	if _, err := p.expectHeader("IDA"); err != nil {
		return nil, err
	}
	fra, err := p.parseFRA()
	if err != nil {
		return nil, err
	}

	nPDA, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	pdas := make([]*PDA, 0, nPDA)
	for i := int32(0); i < nPDA; i++ {
		pda, err := p.parsePDA()
		if err != nil {
			return nil, err
		}
		pdas = append(pdas, pda)
	}

	opaque1, err := p.c.ReadFixed(16)
	if err != nil {
		return nil, asTruncated("IDA opaque block 1", p.c.ReadPos(), err)
	}
	period, err := p.c.ReadWstring()
	if err != nil {
		return nil, err
	}

	nPDL, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	pdls := make([]*PDL, 0, nPDL)
	for i := int32(0); i < nPDL; i++ {
		pdl, err := p.parsePDL()
		if err != nil {
			return nil, err
		}
		pdls = append(pdls, pdl)
	}

	nPD3, err := p.c.ReadI32()
	if err != nil {
		return nil, err
	}
	pd3s := make([]*PD3, 0, nPD3)
	for i := int32(0); i < nPD3; i++ {
		pd3, err := p.parsePD3()
		if err != nil {
			return nil, err
		}
		pd3s = append(pd3s, pd3)
	}

	opaque2, err := p.c.ReadFixed(16)
	if err != nil {
		return nil, asTruncated("IDA opaque block 2", p.c.ReadPos(), err)
	}

	ida := &IDA{FRA: fra, PDAs: pdas, Period: period, PDLs: pdls, PD3s: pd3s}
	copy(ida.Opaque1[:], opaque1)
	copy(ida.Opaque2[:], opaque2)
	return ida, nil
}
