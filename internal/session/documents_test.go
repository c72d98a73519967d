package session

import "testing"

func TestSplitLinesKeepEnds(t *testing.T) {
	text := "foo\nbar\nbaz"
	lines := splitLinesKeepEnds(text)
	want := []string{"foo\n", "bar\n", "baz"}
	if len(lines) != len(want) {
		t.Fatalf("unexpected line count: %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, lines[i], want[i])
		}
	}

	rejoined := ""
	for _, l := range lines {
		rejoined += l
	}
	if rejoined != text {
		t.Fatalf("rejoin mismatch: got %q want %q", rejoined, text)
	}
}

func TestLineColToOffset(t *testing.T) {
	text := "abc\ndefg\nhi"
	off, err := lineColToOffset(text, 1, 2)
	if err != nil {
		t.Fatalf("lineColToOffset: %v", err)
	}
	// "abc\n" is 4 bytes, plus column 2 into "defg" -> offset 6, which is 'f'.
	if off != 6 || text[off] != 'f' {
		t.Fatalf("unexpected offset %d (byte %q)", off, text[off])
	}
}

func TestLineColToOffsetOutOfRange(t *testing.T) {
	text := "abc\n"
	if _, err := lineColToOffset(text, 5, 0); err == nil {
		t.Fatal("expected error for out-of-range line")
	}
	if _, err := lineColToOffset(text, 0, 99); err == nil {
		t.Fatal("expected error for out-of-range column")
	}
}
