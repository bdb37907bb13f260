package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.sq", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	// тот же путь с новым содержимым получает новый ID
	id2 := fs.Add("test.sq", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("test.sq")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("expected nil for unknown FileID")
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("stdin", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	want := FileVirtual | FileHadBOM | FileNormalizedCRLF
	if f.Flags != want {
		t.Errorf("flags = %b, want %b", f.Flags, want)
	}
	if len(f.LineIdx) != 2 || f.LineIdx[0] != 1 || f.LineIdx[1] != 3 {
		t.Errorf("LineIdx = %v, want [1 3]", f.LineIdx)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.sq", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // сам '\n' принадлежит своей строке
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("Resolve(%d) = %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.sq", []byte("first\nsecond\nthird")))

	for n, want := range map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.sq")
	if err := os.WriteFile(path, []byte("x\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x\n" || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("unexpected file: %q flags=%b", f.Content, f.Flags)
	}
	if got := f.FormatPath(PathRelative, fs.BaseDir()); got != "input.sq" {
		t.Errorf("relative path = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.sq")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.sq", []byte("seq N")))

	if got := f.Text(Span{File: f.ID, Start: 4, End: 5}); got != "N" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{File: f.ID, Start: 4, End: 50}); got != "" {
		t.Errorf("out of range Text = %q", got)
	}
	if f.FullSpan().End != 5 {
		t.Errorf("FullSpan = %v", f.FullSpan())
	}
}

func TestLineBounds(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("b.sq", []byte("ab\n\ncd\n")))

	if got := f.LineCount(); got != 3 {
		t.Fatalf("LineCount = %d, want 3", got)
	}
	tests := []struct {
		line       uint32
		start, end uint32
		ok         bool
	}{
		{1, 0, 2, true},
		{2, 3, 3, true},
		{3, 4, 6, true},
		{4, 0, 0, false}, // после завершающего '\n' строки нет
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := f.LineBounds(tt.line)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Errorf("LineBounds(%d) = %d, %d, %v; want %d, %d, %v", tt.line, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
}

func TestFormatPathStyles(t *testing.T) {
	fs := NewFileSet()
	long := "/very/long/absolute/path/that/goes/on/and/on/main.sq"
	f := fs.Get(fs.AddVirtual(long, nil))
	short := fs.Get(fs.AddVirtual("src/x.sq", nil))

	if got := f.FormatPath(PathAuto, ""); got != "main.sq" {
		t.Errorf("auto long = %q", got)
	}
	if got := short.FormatPath(PathAuto, ""); got != "src/x.sq" {
		t.Errorf("auto short = %q", got)
	}
	if got := f.FormatPath(PathBase, ""); got != "main.sq" {
		t.Errorf("base = %q", got)
	}
	if got := f.FormatPath(PathRelative, "/very/long"); got != "absolute/path/that/goes/on/and/on/main.sq" {
		t.Errorf("relative = %q", got)
	}
}
