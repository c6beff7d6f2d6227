package pos

import "testing"

func TestPosLess(t *testing.T) {
	cases := []struct {
		a, b Pos
		want bool
	}{
		{Pos{1, 0, 0}, Pos{2, 0, 0}, true},
		{Pos{2, 0, 0}, Pos{1, 0, 0}, false},
		{Pos{1, 3, 0}, Pos{1, 5, 0}, true},
		{Pos{1, 5, 0}, Pos{1, 5, 1}, true},
		{Pos{1, 5, 1}, Pos{1, 5, 1}, false},
	}
	for _, c := range cases {
		if got := c.a.Less(c.b); got != c.want {
			t.Errorf("%v.Less(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	a := Pos{2, 0, 0}
	b := Pos{1, 0, 0}
	lo, hi := MinMax(a, b)
	if lo != b || hi != a {
		t.Errorf("MinMax(%v,%v) = %v,%v", a, b, lo, hi)
	}
}

func TestCharVcolsTab(t *testing.T) {
	ts := TabStops{Width: 8}
	if w := CharVcols('\t', 0, ts); w != 8 {
		t.Errorf("tab at col 0 width = %d, want 8", w)
	}
	if w := CharVcols('\t', 3, ts); w != 5 {
		t.Errorf("tab at col 3 width = %d, want 5", w)
	}
}

func TestStringVcolWithTab(t *testing.T) {
	ts := TabStops{Width: 8}
	// "a\tbc" -> 'a' at vcol0 (1 col), tab from vcol1 to vcol8 (7 cols), then b,c
	got := StringVcol("a\tbc", 4, 0, ts)
	if got != 10 {
		t.Errorf("StringVcol = %d, want 10", got)
	}
}

func TestByteColAtVcol(t *testing.T) {
	ts := TabStops{Width: 8}
	line := "a\tbc"
	byteCol, charVcol, width := ByteColAtVcol(line, 4, ts)
	if byteCol != 1 || charVcol != 1 || width != 7 {
		t.Errorf("ByteColAtVcol = (%d,%d,%d), want (1,1,7)", byteCol, charVcol, width)
	}
}

func TestGrowArray(t *testing.T) {
	g := NewGrowArray[int](2)
	for i := 0; i < 10; i++ {
		g.Append(i)
	}
	if g.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", g.Len())
	}
	for i, v := range g.Slice() {
		if v != i {
			t.Errorf("Slice()[%d] = %d, want %d", i, v, i)
		}
	}
	g.Reset()
	if g.Len() != 0 {
		t.Errorf("after Reset, Len() = %d, want 0", g.Len())
	}
}
