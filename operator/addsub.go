package operator

import (
	"strconv"
	"strings"

	"github.com/coregx/vimcore/pos"
)

// AddSubDir selects increment vs decrement for OpAddsub.
type AddSubDir int

const (
	Add AddSubDir = 1
	Sub AddSubDir = -1
)

// OpAddsub implements <C-a>/<C-x> and their visual-block g-variants
// (ops.c op_addsub). For each affected line (all lines under visual-
// block/line, just the cursor line in normal mode) it locates a number
// per nrformats, and replaces it with the text incremented or
// decremented per dir, preserving leading zeros and hex case.
// When gCmd is set, the delta grows by prenum1 on every successful line
// so a block selection produces an arithmetic progression.
func (e *Engine) OpAddsub(oap *pos.OpArg, dir AddSubDir, prenum1 int64, gCmd bool) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: oap.Op, Err: ErrNotModifiable}
	}
	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return &OpError{Op: oap.Op, Err: err}
	}

	delta := prenum1 * int64(dir)
	visual := oap.IsVisual && oap.MotionType != pos.MTChar

	lnum := oap.Start.Lnum
	last := oap.Start.Lnum
	if visual {
		last = oap.End.Lnum
	}
	for ; lnum <= last; lnum++ {
		col := 0
		if visual {
			col = oap.Start.Col
		}
		ok := e.addsubLine(lnum, col, delta, e.Opts.NrFormats)
		if ok && gCmd {
			delta += prenum1 * int64(dir)
		}
	}
	return nil
}

// addsubLine locates a number on lnum starting the search at (or after)
// startCol and replaces it with its value plus delta, per the rules in
// spec.md §4.1 "op_addsub". Returns false if no operand was found.
func (e *Engine) addsubLine(lnum, startCol int, delta int64, nf NrFormats) bool {
	line := e.Buf.Line(lnum)

	if nf.Alpha && startCol < len(line) && isAlphaOperand(line, startCol) {
		return e.addsubAlpha(lnum, startCol, delta)
	}

	r, ok := findNumber(line, startCol, nf)
	if !ok {
		return false
	}
	digits := line[r.start:r.end]
	signed := r.neg

	val, origWidth, hexUpper := parseOperand(digits, r.base)
	if signed {
		val = -val
	}
	// int64 addition already wraps modulo 2^64 in two's-complement, which
	// is exactly the decimal-mode wraparound spec.md §8 requires; the
	// unsigned nrformat instead saturates at the range boundary.
	result := val + delta
	if nf.Unsigned && result < 0 {
		if delta < 0 {
			result = 0
		} else {
			result = -1 // all-ones: 2^64-1 as an unsigned uint64
		}
	}

	replacement := formatOperand(result, r.base, origWidth, hexUpper, r.prefixUpper, signed)
	lineStart := r.start
	if signed && r.start > 0 && line[r.start-1] == '-' {
		lineStart = r.start - 1
	}
	newLine := line[:lineStart] + replacement + line[r.end:]
	e.Buf.SetLine(lnum, newLine)
	return true
}

func isAlphaOperand(line string, col int) bool {
	if col >= len(line) {
		return false
	}
	c := line[col]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (e *Engine) addsubAlpha(lnum, col int, delta int64) bool {
	line := e.Buf.Line(lnum)
	c := line[col]
	var lo, hi byte = 'a', 'z'
	if c >= 'A' && c <= 'Z' {
		lo, hi = 'A', 'Z'
	}
	_ = hi
	n := int64(c-lo) + delta
	n %= 26
	if n < 0 {
		n += 26
	}
	nc := lo + byte(n)
	e.Buf.SetLine(lnum, line[:col]+string(nc)+line[col+1:])
	return true
}

// numRun is one recognized numeric literal on a line: its byte extent
// [start,end) including any base prefix (a '-' sign sits just before
// start and is not part of the extent), the base it was
// parsed in, whether a '-' precedes it, and whether its 0x/0X or 0b/0B
// prefix letter was upper-case (tracked separately from hex-digit case,
// since "0xFF" and "0Xff" vary those two independently).
type numRun struct {
	start, end  int
	base        int
	neg         bool
	prefixUpper bool
}

// findNumber locates the number run under col, or failing that the
// next run starting at or after col, matching vim's "search forward on
// the cursor line" fallback. Returns ok=false if the line has none.
func findNumber(line string, col int, nf NrFormats) (numRun, bool) {
	runs := scanNumbers(line, nf)
	for _, r := range runs {
		if col >= r.start && col < r.end {
			return r, true
		}
	}
	for _, r := range runs {
		if r.start >= col {
			return r, true
		}
	}
	return numRun{}, false
}

// scanNumbers tokenizes line into every recognized numeric literal, left
// to right. A run anchors on a decimal digit (never a bare hex letter,
// matching vim's requirement that hex numbers carry an explicit 0x/0X
// prefix) and then extends across 0x/0b prefixes or plain octal/decimal
// digits per nf.
func scanNumbers(line string, nf NrFormats) []numRun {
	var runs []numRun
	i := 0
	for i < len(line) {
		if !isDigitByte(line[i]) {
			i++
			continue
		}
		start := i
		if line[i] == '0' && i+2 < len(line) {
			n := line[i+1]
			if (n == 'x' || n == 'X') && nf.Hex && isBaseDigit(line[i+2], 16) {
				j := i + 2
				for j < len(line) && isBaseDigit(line[j], 16) {
					j++
				}
				runs = append(runs, makeRun(line, start, j, 16, n == 'X', nf))
				i = j
				continue
			}
			if (n == 'b' || n == 'B') && nf.Bin && isBaseDigit(line[i+2], 2) {
				j := i + 2
				for j < len(line) && isBaseDigit(line[j], 2) {
					j++
				}
				runs = append(runs, makeRun(line, start, j, 2, n == 'B', nf))
				i = j
				continue
			}
		}
		j := i
		for j < len(line) && isDigitByte(line[j]) {
			j++
		}
		base := 10
		if nf.Octal && line[i] == '0' && j > i+1 && allOctalDigits(line, i, j) {
			base = 8
		}
		runs = append(runs, makeRun(line, start, j, base, false, nf))
		i = j
	}
	return runs
}

func makeRun(line string, start, end, base int, prefixUpper bool, nf NrFormats) numRun {
	neg := !nf.Unsigned && start > 0 && line[start-1] == '-'
	return numRun{start: start, end: end, base: base, neg: neg, prefixUpper: prefixUpper}
}

func allOctalDigits(line string, start, end int) bool {
	for k := start; k < end; k++ {
		if line[k] < '0' || line[k] > '7' {
			return false
		}
	}
	return true
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isBaseDigit(c byte, base int) bool {
	switch base {
	case 16:
		return isDigitByte(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	default:
		return isDigitByte(c)
	}
}

// parseOperand returns the operand's value, the pad-to width its
// replacement should be zero-extended to, and whether it used upper-case
// hex digits. The pad width is only nonzero when the original digit run
// itself began with a '0' — an operand with no leading zero never gets
// padded back up even if the result has fewer digits (ops.c's "number of
// leading zeros" only fires when there were any to begin with).
func parseOperand(digits string, base int) (val int64, width int, hexUpper bool) {
	s := digits
	if base == 16 || base == 2 {
		s = digits[2:]
	}
	for _, c := range []byte(s) {
		if c >= 'A' && c <= 'F' {
			hexUpper = true
			break
		}
	}
	v, _ := strconv.ParseUint(s, base, 64)
	if len(s) > 1 && s[0] == '0' {
		width = len(s)
	}
	return int64(v), width, hexUpper
}

func formatOperand(val int64, base, width int, hexUpper, prefixUpper, signed bool) string {
	uv := uint64(val)
	switch base {
	case 16:
		digits := strconv.FormatUint(uv, 16)
		if hexUpper {
			digits = strings.ToUpper(digits)
		}
		digits = padZeros(digits, width)
		prefix := "0x"
		if prefixUpper {
			prefix = "0X"
		}
		return prefix + digits
	case 2:
		prefix := "0b"
		if prefixUpper {
			prefix = "0B"
		}
		return prefix + padZeros(strconv.FormatUint(uv, 2), width)
	case 8:
		return "0" + padZeros(strconv.FormatUint(uv, 8), width)
	default:
		if signed {
			digits := strconv.FormatInt(val, 10)
			neg := strings.HasPrefix(digits, "-")
			if neg {
				digits = digits[1:]
			}
			digits = padZeros(digits, width)
			if neg {
				return "-" + digits
			}
			return digits
		}
		return padZeros(strconv.FormatUint(uv, 10), width)
	}
}

// padZeros left-pads digits with '0' up to width, the mechanism by which
// "007" + 3 renders as "010" rather than "10": the replacement always
// occupies at least as many digit columns as the original operand did.
func padZeros(digits string, width int) string {
	for len(digits) < width {
		digits = "0" + digits
	}
	return digits
}
