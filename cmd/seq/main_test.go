package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"seq/internal/config"
	"seq/internal/diag"
	"seq/internal/driver"
	"seq/internal/source"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiModeAuto},
		{"AUTO", uiModeAuto},
		{" on ", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if err != nil || got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, %v; want %q", tc.input, got, err, tc.want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
	if shouldUseTUI(uiModeOff, 10) || !shouldUseTUI(uiModeOn, 0) {
		t.Fatalf("explicit ui modes must win")
	}
}

func TestWriteBase(t *testing.T) {
	dir := t.TempDir()
	file := writeTestFile(t, dir, "a.sq", "x")
	if got := writeBase([]string{dir}); got != dir {
		t.Fatalf("writeBase(dir) = %q", got)
	}
	if got := writeBase([]string{file}); got != dir {
		t.Fatalf("writeBase(file) = %q", got)
	}
	if got := writeBase([]string{dir, file}); got != "" {
		t.Fatalf("writeBase(many) = %q", got)
	}
	if got := writeBase([]string{driver.StdinPath}); got != "" {
		t.Fatalf("writeBase(stdin) = %q", got)
	}
}

func TestEmitResultsSeparatesFiles(t *testing.T) {
	failed := diag.NewBag(1)
	failed.Add(diag.NewError(diag.SeqExpectIn, diagSpan(), "expected `in`"))
	results := []*driver.ExpandResult{
		{Path: "a.sq", Output: []byte("a0 a1")},
		{Path: "bad.sq", Bag: failed},
		{Path: "b.sq", Output: []byte("b0\n")},
	}
	var buf bytes.Buffer
	if err := emitResults(&buf, results, "text"); err != nil {
		t.Fatalf("emitResults: %v", err)
	}
	want := "==> a.sq <==\na0 a1\n\n==> b.sq <==\nb0\n"
	if buf.String() != want {
		t.Fatalf("emitResults:\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := emitResults(&buf, results[:1], "text"); err != nil {
		t.Fatalf("emitResults: %v", err)
	}
	if buf.String() != "a0 a1" {
		t.Fatalf("single file must be emitted verbatim, got %q", buf.String())
	}
}

func TestSummarize(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SeqExpectIn, diagSpan(), "x"))
	sum := summarize([]*driver.ExpandResult{
		{Sites: 2, Cached: true},
		{Sites: 1, Failed: 1, Bag: bag},
		nil,
	})
	got := sum.String()
	want := "2 file(s), 3 site(s) expanded, 1 failed, 1 from cache, 1 error(s)"
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{showHash: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Tool != "seq" || payload.Version == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.GitCommit == "" {
		t.Fatalf("--hash must fill git_commit (at least \"unknown\")")
	}
	if payload.BuildDate != "" {
		t.Fatalf("build date must be omitted without --date")
	}
}

func TestExpandCommandWritesOutputs(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	cfg := writeTestFile(t, t.TempDir(), config.FileName, "[expand]\nmacro = \"rep\"\n")
	writeTestFile(t, src, "a.sq", "rep!(N in 0..2 { a~N });\n")
	writeTestFile(t, src, "sub/b.sq", "keep rep![I in 1..3 { b~I, }];\n")

	rootCmd.SetArgs([]string{"--quiet", "--config", cfg, "expand", "--ui", "off", "--out", out, src})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expand: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(out, "a.sq"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "a0 a1\n" {
		t.Fatalf("a.sq = %q", got)
	}
	got, err = os.ReadFile(filepath.Join(out, "sub", "b.sq"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "keep b1, b2,\n" {
		t.Fatalf("sub/b.sq = %q", got)
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"init", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(buf.String(), config.FileName) {
		t.Fatalf("init output %q does not name the file", buf.String())
	}
	if _, err := config.Load(filepath.Join(dir, config.FileName)); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
}

func diagSpan() source.Span { return source.Span{} }

func TestFixCommandInsertsMissingIn(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestFile(t, t.TempDir(), config.FileName, "")
	path := writeTestFile(t, dir, "a.sq", "seq!(N 0..2 { a~N })\nkeep)\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"--quiet", "--config", cfg, "fix", "--all", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("fix: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "seq!(N in 0..2 { a~N })\nkeep\n" {
		t.Fatalf("fixed file = %q", got)
	}
	if !strings.Contains(buf.String(), "Applied 2 fix(es)") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestReadFixOptionsRejectsConflicts(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("all", true, "")
	cmd.Flags().Bool("once", false, "")
	cmd.Flags().String("id", "x", "")
	cmd.Flags().Bool("dry-run", false, "")
	if _, err := readFixOptions(cmd); err == nil {
		t.Fatalf("expected --id with --all to be rejected")
	}
}
