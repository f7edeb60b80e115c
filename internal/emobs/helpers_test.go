package emobs

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// appendWstring writes a length-prefixed UTF-16LE wide string matching the
// EMObs encoding: a negated int32 character count followed by that many
// 16-bit code units.
func appendWstring(buf *bytes.Buffer, s string) {
	units := utf16.Encode([]rune(s))
	_ = binary.Write(buf, binary.LittleEndian, int32(-len(units)))
	for _, u := range units {
		_ = binary.Write(buf, binary.LittleEndian, u)
	}
}

// appendMat writes a MAT field from a [x][y]-indexed matrix of strings.
func appendMat(buf *bytes.Buffer, values [][]string) {
	buf.WriteString(matLiteral)
	dimX := len(values)
	dimY := 0
	if dimX > 0 {
		dimY = len(values[0])
	}
	_ = binary.Write(buf, binary.LittleEndian, int32(dimX))
	_ = binary.Write(buf, binary.LittleEndian, int32(dimY))
	for y := 0; y < dimY; y++ {
		for x := 0; x < dimX; x++ {
			appendWstring(buf, values[x][y])
		}
	}
}

func appendTag(buf *bytes.Buffer, tlc string, version byte) {
	buf.WriteString(tlc)
	buf.WriteByte(version)
}

func appendCPT(buf *bytes.Buffer, x, y float64) {
	appendTag(buf, "CPT", 0)
	_ = binary.Write(buf, binary.LittleEndian, x)
	_ = binary.Write(buf, binary.LittleEndian, y)
}

func appendFRA(buf *bytes.Buffer, camera, frame int32, media string) {
	appendTag(buf, "FRA", 1)
	_ = binary.Write(buf, binary.LittleEndian, camera)
	_ = binary.Write(buf, binary.LittleEndian, frame)
	appendWstring(buf, media)
}

// appendEBS writes a minimal EBS+CIN+PTN header: picture directory dir,
// a single opcode opCode (CIN values[0][0]), and a single PTN title.
func appendEBS(buf *bytes.Buffer, dir, opCode, ptnTitle string, ptnData1 int32) {
	appendTag(buf, "EBS", 4)
	appendWstring(buf, dir)

	appendTag(buf, "CIN", 0)
	appendMat(buf, [][]string{{"title"}}) // titles: 1x1
	appendMat(buf, [][]string{{opCode}})  // values: 1x1

	appendTag(buf, "PTN", 0)
	appendMat(buf, [][]string{{ptnTitle}})
	_ = binary.Write(buf, binary.LittleEndian, ptnData1)
}

func taxonomyMat(family, genus, species, count string) [][]string {
	// [x][y], dimX=5, dimY=1: family, genus, species, "", count
	return [][]string{{family}, {genus}, {species}, {""}, {count}}
}

func opaque16(buf *bytes.Buffer) {
	buf.Write(make([]byte, 16))
}
