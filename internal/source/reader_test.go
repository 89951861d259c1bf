package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	content := "http://example.com\n  http://example.org  \n\nhttp://example.net"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() err = %v", err)
	}
	want := []string{"http://example.com", "http://example.org", "", "http://example.net"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadLines() = %q, want %q", got, want)
	}
}

func TestReadLinesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() err = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ReadLines() = %q, want empty", got)
	}
}

func TestReadLinesMissing(t *testing.T) {
	if _, err := ReadLines(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("ReadLines() expected error for missing file")
	}
}

func TestRepeat(t *testing.T) {
	urls := []string{"a", "b"}
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"once", 1, []string{"a", "b"}},
		{"three times", 3, []string{"a", "b", "a", "b", "a", "b"}},
		{"zero clamps to one", 0, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repeat(urls, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Repeat(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
	if len(urls) != 2 {
		t.Fatal("Repeat mutated its input")
	}
}
