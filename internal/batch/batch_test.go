package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSortPDFsByNumber(t *testing.T) {
	paths := []string{"book-10.pdf", "book-2.pdf", "book-1.pdf"}
	sorted := sortPDFsByNumber(paths)
	want := []string{"book-1.pdf", "book-2.pdf", "book-10.pdf"}
	for i, p := range sorted {
		if p != want[i] {
			t.Errorf("position %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestSortPDFsByNumberLexicalFallback(t *testing.T) {
	paths := []string{"zeta.pdf", "alpha.pdf"}
	sorted := sortPDFsByNumber(paths)
	if sorted[0] != "alpha.pdf" || sorted[1] != "zeta.pdf" {
		t.Errorf("unexpected order: %v", sorted)
	}
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b-2.pdf", "b-1.pdf", "notes.txt", "indexed_b-1.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(sub, "deep.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	flat, err := FindPDFs(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flat) != 2 {
		t.Fatalf("expected 2 PDFs without recursion, got %d: %v", len(flat), flat)
	}
	if filepath.Base(flat[0]) != "b-1.pdf" || filepath.Base(flat[1]) != "b-2.pdf" {
		t.Errorf("unexpected order: %v", flat)
	}

	deep, err := FindPDFs(dir, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deep) != 3 {
		t.Errorf("expected 3 PDFs with recursion, got %d: %v", len(deep), deep)
	}
}

func TestOutputPath(t *testing.T) {
	src := filepath.Join("data", "report.pdf")
	if got := outputPath(src, Options{}); got != filepath.Join("data", "indexed_report.pdf") {
		t.Errorf("unexpected in-place output path: %q", got)
	}
	if got := outputPath(src, Options{OutputDir: "/out"}); got != filepath.Join("/out", "indexed_report.pdf") {
		t.Errorf("unexpected custom output path: %q", got)
	}
}
