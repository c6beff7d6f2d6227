package regex

import "testing"

func mustCompile(t *testing.T, pattern string, flags Flags) *Prog {
	t.Helper()
	prog, err := Compile(pattern, flags)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", pattern, err)
	}
	return prog
}

func find(t *testing.T, pattern, input string, flags Flags) (Result, bool) {
	t.Helper()
	prog := mustCompile(t, pattern, flags)
	m := NewMatcher(prog)
	res, ok, err := m.Find(input, MatchOptions{})
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	return res, ok
}

func TestLiteralMatch(t *testing.T) {
	res, ok := find(t, "foo", "xxfooyy", DefaultFlags())
	if !ok {
		t.Fatalf("expected match")
	}
	if res.Start != 2 || res.End != 5 {
		t.Fatalf("got [%d,%d)", res.Start, res.End)
	}
}

func TestVeryMagicAlternation(t *testing.T) {
	_, ok := find(t, `\v(foo|bar)`, "xbarx", DefaultFlags())
	if !ok {
		t.Fatalf("expected match")
	}
	_, ok = find(t, `\v(foo|bar)`, "xbazx", DefaultFlags())
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestCaptureGroup(t *testing.T) {
	res, ok := find(t, `\v(\w+)[@](\w+)`, "user@host", DefaultFlags())
	if !ok {
		t.Fatalf("expected match")
	}
	g1 := res.Subs[1]
	g2 := res.Subs[2]
	if "user@host"[g1[0]:g1[1]] != "user" {
		t.Fatalf("group1 = %q", "user@host"[g1[0]:g1[1]])
	}
	if "user@host"[g2[0]:g2[1]] != "host" {
		t.Fatalf("group2 = %q", "user@host"[g2[0]:g2[1]])
	}
}

func TestBackrefSameLine(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"foo foo", true},
		{"foo bar", false},
	}
	for _, c := range cases {
		_, ok := find(t, `\v^(\w+) \1$`, c.input, DefaultFlags())
		if ok != c.want {
			t.Errorf("input %q: got match=%v want %v", c.input, ok, c.want)
		}
	}
}

func TestAnchors(t *testing.T) {
	_, ok := find(t, `\v^abc$`, "abc", DefaultFlags())
	if !ok {
		t.Fatalf("expected anchored match")
	}
	_, ok = find(t, `\v^abc$`, "xabc", DefaultFlags())
	if ok {
		t.Fatalf("expected no match: not at start")
	}
}

func TestWordBoundary(t *testing.T) {
	_, ok := find(t, `\v<cat>`, "a cat sat", DefaultFlags())
	if !ok {
		t.Fatalf("expected word-boundary match")
	}
	_, ok = find(t, `\v<cat>`, "concatenate", DefaultFlags())
	if ok {
		t.Fatalf("expected no match inside a larger word")
	}
}

func TestLookahead(t *testing.T) {
	_, ok := find(t, `\vfoo\(bar\)@=`, "foobar", DefaultFlags())
	if !ok {
		t.Fatalf("expected positive lookahead match")
	}
	_, ok = find(t, `\vfoo\(bar\)@=`, "foobaz", DefaultFlags())
	if ok {
		t.Fatalf("expected no match: lookahead fails")
	}
}

func TestNegativeLookahead(t *testing.T) {
	_, ok := find(t, `\vfoo\(bar\)@!`, "foobaz", DefaultFlags())
	if !ok {
		t.Fatalf("expected negative lookahead to allow match")
	}
	_, ok = find(t, `\vfoo\(bar\)@!`, "foobar", DefaultFlags())
	if ok {
		t.Fatalf("expected negative lookahead to block match")
	}
}

func TestLookbehind(t *testing.T) {
	_, ok := find(t, `\v(foo)@<=bar`, "foobar", DefaultFlags())
	if !ok {
		t.Fatalf("expected lookbehind match")
	}
	_, ok = find(t, `\v(foo)@<=bar`, "bazbar", DefaultFlags())
	if ok {
		t.Fatalf("expected lookbehind to reject")
	}
}

func TestOptionalSequence(t *testing.T) {
	_, ok := find(t, `r\%[ead]`, "r", DefaultFlags())
	if !ok {
		t.Fatalf("expected bare prefix to match")
	}
	_, ok = find(t, `r\%[ead]`, "read", DefaultFlags())
	if !ok {
		t.Fatalf("expected full optional sequence to match")
	}
	_, ok = find(t, `r\%[ead]`, "rx", DefaultFlags())
	if !ok {
		t.Fatalf("expected partial prefix match (zero-width tail)")
	}
}

func TestIgnoreCase(t *testing.T) {
	_, ok := find(t, "foo", "FOO", Flags{Magic: MagicMagic, IgnoreCase: true})
	if !ok {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestCollection(t *testing.T) {
	_, ok := find(t, `[0-9]\+`, "abc123", DefaultFlags())
	if !ok {
		t.Fatalf("expected digit run match")
	}
	res, _ := find(t, `[0-9]\+`, "abc123xyz", DefaultFlags())
	if res.End-res.Start != 3 {
		t.Fatalf("expected greedy match of length 3, got %d", res.End-res.Start)
	}
}

func TestUnmatchedParenError(t *testing.T) {
	_, err := Compile(`\v(foo`, DefaultFlags())
	if err == nil {
		t.Fatalf("expected compile error for unmatched paren")
	}
}

func TestPrefilterLiteralAlternation(t *testing.T) {
	prog := mustCompile(t, `\v(cat|dog|bird)`, DefaultFlags())
	pf := BuildPrefilter(prog)
	if pf == nil {
		t.Fatalf("expected a literal-set prefilter to be built")
	}
	idx := pf.Next([]byte("the quick dog jumps"), 0)
	if idx != 10 {
		t.Fatalf("expected prefilter hit at 10, got %d", idx)
	}
}

func TestMagicLevels(t *testing.T) {
	// Under \M (nomagic), '.' is literal and '\.' ... still a literal dot
	// since nomagic only demotes '.', '*', but keeps \( special off by
	// default; vimcore's simplification treats \M like \m for groups.
	_, ok := find(t, `\Ma.c`, "a.c", DefaultFlags())
	if !ok {
		t.Fatalf("expected literal dot to match under nomagic")
	}
}
