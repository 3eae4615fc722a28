package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Mode", "Key", "Chars"}
	rows := [][]string{
		{"encrypt", "3", "12"},
		{"brute", "-", "140"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Mode    Key Chars" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "encrypt   3    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "brute     -   140" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := FormatTable([]string{"A", "B"}, [][]string{{"日本", "x"}}, nil)
	if lines[0] != "A    B" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "日本 x" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
