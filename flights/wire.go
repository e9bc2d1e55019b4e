package flights

// Minimal write-side primitives for the tfs wire format: base-128 varints and
// field-tagged, length-delimited values. The schema is fixed by the far end,
// so there is no decode side and no generality beyond what the encoder needs.

const (
	wireVarint    = 0
	wireDelimited = 2
)

func appendVarint(buf []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

func appendTag(buf []byte, field int, wireType int) []byte {
	return appendVarint(buf, uint64(field)<<3|uint64(wireType))
}

func appendString(buf []byte, field int, s string) []byte {
	buf = appendTag(buf, field, wireDelimited)
	buf = appendVarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// appendSubmessage writes an already-serialized nested message as a
// length-delimited field.
func appendSubmessage(buf []byte, field int, inner []byte) []byte {
	buf = appendTag(buf, field, wireDelimited)
	buf = appendVarint(buf, uint64(len(inner)))
	return append(buf, inner...)
}
