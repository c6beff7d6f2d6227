package script

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// bomDecoder wraps the x/text BOM-aware UTF-8 transformer used by
// do_source step 5: a file beginning with EF BB BF is decoded as UTF-8
// with the BOM stripped; a file without one passes through unchanged.
// Constructed lazily so files with no BOM pay no transform cost.
type bomDecoder struct {
	active bool
	t      transform.Transformer
}

// detectAndStrip inspects the first chunk read from a freshly opened
// file and, if it begins with a UTF-8 BOM, arms the decoder and returns
// the chunk with the BOM removed and the remainder re-decoded through
// it; otherwise returns data unchanged.
func (d *bomDecoder) detectAndStrip(data []byte) []byte {
	if !bytes.HasPrefix(data, utf8BOM) {
		return data
	}
	d.active = true
	d.t = unicode.UTF8.NewDecoder()
	out, _, err := transform.Bytes(d.t, data[len(utf8BOM):])
	if err != nil {
		// Malformed UTF-8 after a declared BOM: pass the raw bytes
		// through rather than losing the rest of the line.
		return data[len(utf8BOM):]
	}
	return out
}

// convert re-encodes a later chunk once the decoder has been armed by
// detectAndStrip; a no-op while the decoder is inactive.
func (d *bomDecoder) convert(data []byte) []byte {
	if !d.active {
		return data
	}
	out, _, err := transform.Bytes(d.t, data)
	if err != nil {
		return data
	}
	return out
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// detectEol classifies chunk's line ending per spec.md §4.4 get_one_line
// step 3's auto-detection rules, only meaningful while eol is Unknown.
func detectEol(chunk []byte) EolFormat {
	switch {
	case bytes.Contains(chunk, []byte("\r\n")):
		return EolDos
	case bytes.ContainsRune(chunk, '\n'):
		return EolUnix
	case bytes.ContainsRune(chunk, '\r'):
		return EolMac
	default:
		return EolUnknown
	}
}

// getOneLine reads one physical line from sc honoring eol_format
// detection/switching (spec.md §4.4 get_one_line). It returns ok=false
// at EOF.
func (sc *SourceCookie) getOneLine() (string, bool) {
	if sc.finished || sc.pos >= len(sc.data) {
		return "", false
	}

	// Auto-detect the file's line-ending convention once, from the
	// whole remaining buffer, so a file with no '\n' at all (pure Mac
	// format) is recognized instead of being read back as one giant
	// line (spec.md §4.4 get_one_line step 3).
	if sc.eol == EolUnknown {
		sc.eol = detectEol(sc.data[sc.pos:])
		if sc.eol == EolUnknown {
			sc.eol = EolUnix
		}
	}

	raw := sc.data
	start := sc.pos
	term := byte('\n')
	if sc.eol == EolMac {
		term = '\r'
	}

	// Find the terminator, honoring an odd run of ^V (0x16) escapes
	// immediately before it by treating it as escaped text rather than
	// a terminator (spec.md §4.4 get_one_line step 5; the original only
	// documents this for '\n', so it's skipped in Mac mode).
	i := start
	for {
		idx := bytes.IndexByte(raw[i:], term)
		if idx < 0 {
			i = len(raw)
			break
		}
		idx += i
		if sc.eol != EolMac && countTrailingCtrlV(raw[start:idx])%2 == 1 {
			i = idx + 1
			continue
		}
		i = idx
		break
	}

	var line []byte
	var consumed int
	if i >= len(raw) {
		line = raw[start:]
		consumed = len(raw) - start
	} else {
		line = raw[start:i]
		consumed = i - start + 1 // include the terminator

		if sc.eol == EolDos {
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			} else if !sc.warnedDosMismatch {
				// Missing \r before \n: warn once, then stop treating
				// the file as Dos so no further mismatches fire
				// (spec.md §4.4 get_one_line step 4).
				sc.warnedDosMismatch = true
				sc.eol = EolUnix
			}
			line = stripTrailingCtrlZ(line)
		}
	}
	sc.pos = start + consumed

	converted := sc.decoder.convert(line)
	return string(converted), true
}

func countTrailingCtrlV(b []byte) int {
	n := 0
	for i := len(b) - 1; i >= 0 && b[i] == 0x16; i-- {
		n++
	}
	return n
}

func stripTrailingCtrlZ(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == 0x1A {
		return line[:len(line)-1]
	}
	return line
}

// continuationBuffer accumulates a backslash-continued ex-command,
// doubling its growsize from 400 to 8000 bytes the way spec.md §4.4
// step 3 describes for long continuations, rather than growing by a
// fixed or unbounded factor every append.
type continuationBuffer struct {
	b        strings.Builder
	growsize int
}

func newContinuationBuffer() *continuationBuffer {
	return &continuationBuffer{growsize: 400}
}

func (c *continuationBuffer) writeLine(s string) {
	if c.b.Len()+len(s) > c.growsize && c.growsize < 8000 {
		c.growsize = 8000
	}
	c.b.WriteString(s)
}

func (c *continuationBuffer) String() string { return c.b.String() }
