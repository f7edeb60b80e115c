package emobs

// A TLC candidate at offset k is accepted iff all four bytes are present and
// buf[k] is ASCII uppercase, buf[k+1] and buf[k+2] are uppercase or an ASCII
// digit, and buf[k+3] (the version byte) is in 0..=5.

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isUpperOrDigit(b byte) bool { return isUpper(b) || (b >= '0' && b <= '9') }

func (c *Cursor) isTLCAt(k int) bool {
	if k < 0 || k+4 > len(c.buf) {
		return false
	}
	return isUpper(c.buf[k]) && isUpperOrDigit(c.buf[k+1]) && isUpperOrDigit(c.buf[k+2]) && c.buf[k+3] <= 5
}

// PeekResult distinguishes "not a TLC" from "ran out of buffer" at the
// position tested by PeekNextTLC.
type PeekResult int

const (
	PeekNotTLC PeekResult = iota
	PeekFound
	PeekEndOfBuffer
)

// PeekNextTLC tests the single position at readPos under the TLC
// recognition rule. It does not move any pointer.
func (c *Cursor) PeekNextTLC() (string, PeekResult) {
	if c.readPos+4 > len(c.buf) {
		return "", PeekEndOfBuffer
	}
	if !c.isTLCAt(c.readPos) {
		return "", PeekNotTLC
	}
	return string(c.buf[c.readPos : c.readPos+3]), PeekFound
}

// NextTLC scans forward from seekPos for the next accepted TLC position,
// then scans again from that position+3 for the one after it. It returns
// the TLC letters and the slice covering [first, second) (or [first, end)
// when no further TLC exists), sets seekPos to second (or end), and sets
// lastTLCPos to first.
//
// If no TLC is found at all, it reports ErrNoMoreRecords — the natural
// terminator for the top-level record loop.
func (c *Cursor) NextTLC() (tlc string, body []byte, err error) {
	first := -1
	for k := c.seekPos; k+4 <= len(c.buf); k++ {
		if c.isTLCAt(k) {
			first = k
			break
		}
	}
	if first < 0 {
		c.seekPos = len(c.buf)
		return "", nil, ErrNoMoreRecords
	}

	second := -1
	for k := first + 3; k+4 <= len(c.buf); k++ {
		if c.isTLCAt(k) {
			second = k
			break
		}
	}

	c.lastTLCPos = first
	if second >= 0 {
		c.seekPos = second
		return string(c.buf[first : first+3]), c.buf[first:second], nil
	}
	c.seekPos = len(c.buf)
	return string(c.buf[first : first+3]), c.buf[first:], nil
}

// ScanForWstrings is the "wstring signature" heuristic of the design notes:
// an unused-in-production helper that scans opaque regions for plausibly
// embedded wide strings by looking for negated int32 length prefixes in
// (-512, 0) followed by 16-bit code units whose high byte is zero. It is a
// debugging aid, not required for correctness; no diagnostic pass or CLI
// option calls it.
func ScanForWstrings(buf []byte) []int {
	var hits []int
	for i := 0; i+4 <= len(buf); i++ {
		n := int32(uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24)
		if n >= 0 || n <= -512 {
			continue
		}
		count := int(-n)
		end := i + 4 + count*2
		if end > len(buf) {
			continue
		}
		plausible := true
		for u := 0; u < count; u++ {
			if buf[i+4+u*2+1] != 0 {
				plausible = false
				break
			}
		}
		if plausible {
			hits = append(hits, i)
		}
	}
	return hits
}
