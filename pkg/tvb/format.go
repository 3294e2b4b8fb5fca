package tvb

import "bytes"

// Formatter renders a raw byte range into a printable ASCII string.
// The escaping rules themselves are an external collaborator per
// spec.md §1 ("String-formatting helpers... named only by the
// interface they consume or produce") — this package only defines the
// seam and a minimal default.
type Formatter interface {
	// FormatText renders data as printable text, escaping bytes that
	// are not safely printable.
	FormatText(data []byte) string
	// FormatTextWsp is FormatText but additionally collapses
	// whitespace runs, matching the "_wsp" family's intent of
	// producing text safe to embed in a single display line.
	FormatTextWsp(data []byte) string
}

// DefaultFormatter is a minimal Formatter: bytes in the printable
// ASCII range pass through unescaped, everything else becomes a
// "\xHH" escape. It exists so FormatText/FormatStringzPad are usable
// without a caller-supplied Formatter; a dissector frontend wanting
// richer escaping (unicode-aware, color, etc.) supplies its own.
type DefaultFormatter struct{}

const hexDigits = "0123456789abcdef"

func (DefaultFormatter) FormatText(data []byte) string {
	var out bytes.Buffer
	for _, c := range data {
		if c >= 0x20 && c < 0x7f {
			out.WriteByte(c)
			continue
		}
		out.WriteString(`\x`)
		out.WriteByte(hexDigits[c>>4])
		out.WriteByte(hexDigits[c&0xf])
	}
	return out.String()
}

func (DefaultFormatter) FormatTextWsp(data []byte) string {
	var out bytes.Buffer
	prevSpace := false
	for _, c := range data {
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			if !prevSpace {
				out.WriteByte(' ')
			}
			prevSpace = true
		case c >= 0x20 && c < 0x7f:
			out.WriteByte(c)
			prevSpace = false
		default:
			out.WriteString(`\x`)
			out.WriteByte(hexDigits[c>>4])
			out.WriteByte(hexDigits[c&0xf])
			prevSpace = false
		}
	}
	return out.String()
}

// FormatText renders the size bytes starting at offset through f.
func FormatText(b *Buffer, offset, size int, f Formatter) (string, error) {
	ptr, err := GetPtr(b, offset, size)
	if err != nil {
		return "", err
	}
	return f.FormatText(ptr), nil
}

// FormatTextWsp is FormatText using f.FormatTextWsp.
func FormatTextWsp(b *Buffer, offset, size int, f Formatter) (string, error) {
	ptr, err := GetPtr(b, offset, size)
	if err != nil {
		return "", err
	}
	return f.FormatTextWsp(ptr), nil
}

// FormatStringzPad is FormatText for a NUL-padded fixed-size string:
// it renders only the bytes up to the first NUL inside [offset,
// offset+size), not the padding.
func FormatStringzPad(b *Buffer, offset, size int, f Formatter) (string, error) {
	ptr, err := GetPtr(b, offset, size)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(ptr, 0); i >= 0 {
		ptr = ptr[:i]
	}
	return f.FormatText(ptr), nil
}

// FormatStringzPadWsp is FormatStringzPad using f.FormatTextWsp.
func FormatStringzPadWsp(b *Buffer, offset, size int, f Formatter) (string, error) {
	ptr, err := GetPtr(b, offset, size)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(ptr, 0); i >= 0 {
		ptr = ptr[:i]
	}
	return f.FormatTextWsp(ptr), nil
}

// BytesToStr renders the size bytes starting at offset as a colon-
// separated lowercase hex dump, e.g. "01:02:0a". This is a raw-bytes
// rendering distinct from FormatText's printable-text escaping; it
// never consults a Formatter since there is no text to escape.
func BytesToStr(b *Buffer, offset, size int) (string, error) {
	return BytesToStrPunct(b, offset, size, ':')
}

// BytesToStrPunct is BytesToStr with a caller-chosen separator byte
// between hex pairs. A punct of 0 omits the separator entirely.
func BytesToStrPunct(b *Buffer, offset, size int, punct byte) (string, error) {
	ptr, err := GetPtr(b, offset, size)
	if err != nil {
		return "", err
	}
	if len(ptr) == 0 {
		return "", nil
	}
	var out bytes.Buffer
	out.Grow(len(ptr) * 3)
	for i, c := range ptr {
		if i > 0 && punct != 0 {
			out.WriteByte(punct)
		}
		out.WriteByte(hexDigits[c>>4])
		out.WriteByte(hexDigits[c&0xf])
	}
	return out.String(), nil
}
