package emobs

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// matLiteral is the 4-byte prefix ("MAT\0") that opens every MAT field.
const matLiteral = "MAT\x00"

// maxWstringChars bounds the code-unit count a wstring length prefix may
// declare, per spec: -n <= 512.
const maxWstringChars = 512

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ReadWstring reads a length-prefixed wide string: a 32-bit signed integer
// whose negation is the character count, followed by that many 16-bit
// UTF-16LE code units.
func (c *Cursor) ReadWstring() (string, error) {
	lenOffset := c.readPos
	n, err := c.ReadI32()
	if err != nil {
		return "", asTruncated("wstring length prefix", lenOffset, err)
	}
	if n > 0 {
		return "", &MalformedError{
			Context: fmt.Sprintf("wstring length prefix must be <= 0, got %d at offset %d", n, lenOffset),
		}
	}
	count := int(-n)
	if count > maxWstringChars {
		return "", &MalformedError{
			Context: fmt.Sprintf("wstring character count %d exceeds maximum %d at offset %d", count, maxWstringChars, lenOffset),
		}
	}
	if count == 0 {
		return "", nil
	}
	raw, err := c.ReadFixed(count * 2)
	if err != nil {
		return "", asTruncated("wstring code units", c.readPos, err)
	}
	text, err := utf16LE.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &MalformedError{Context: fmt.Sprintf("invalid utf-16le wstring at offset %d: %v", lenOffset, err)}
	}
	return string(text), nil
}

// Mat is a two-dimensional string matrix, indexed [x][y] to match the
// layout the source stores (iteration order in the stream is y-major,
// x-minor).
type Mat struct {
	DimX, DimY int
	Values     [][]string
}

// At returns the string at [x][y], or "" if out of range.
func (m *Mat) At(x, y int) string {
	if m == nil || x < 0 || x >= m.DimX || y < 0 || y >= m.DimY {
		return ""
	}
	return m.Values[x][y]
}

// ReadMat consumes the literal "MAT\0", two int32 dimensions, and
// dimX*dimY wstrings, read in y-major order, yielding a [x][y]-indexed Mat.
func (c *Cursor) ReadMat() (*Mat, error) {
	litOffset := c.readPos
	lit, err := c.ReadFixed(4)
	if err != nil {
		return nil, asTruncated("MAT literal", litOffset, err)
	}
	if string(lit) != matLiteral {
		return nil, &MalformedError{Context: fmt.Sprintf("expected MAT literal, found %q at offset %d", lit, litOffset)}
	}

	dimX, err := c.ReadI32()
	if err != nil {
		return nil, asTruncated("MAT dimX", c.readPos, err)
	}
	dimY, err := c.ReadI32()
	if err != nil {
		return nil, asTruncated("MAT dimY", c.readPos, err)
	}
	if dimX < 0 || dimY < 0 {
		return nil, &MalformedError{Context: fmt.Sprintf("negative MAT dimensions (%d, %d) at offset %d", dimX, dimY, litOffset)}
	}

	mat := &Mat{DimX: int(dimX), DimY: int(dimY)}
	mat.Values = make([][]string, mat.DimX)
	for x := range mat.Values {
		mat.Values[x] = make([]string, mat.DimY)
	}

	for y := 0; y < mat.DimY; y++ {
		for x := 0; x < mat.DimX; x++ {
			s, err := c.ReadWstring()
			if err != nil {
				return nil, err
			}
			mat.Values[x][y] = s
		}
	}
	return mat, nil
}
