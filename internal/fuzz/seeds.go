package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// builtinSeeds cover every header form and the marker shapes.
var builtinSeeds = []string{
	"",
	"seq!(N in 0..4 { f~N(); });",
	"seq!(N in 0..=3 { x });",
	"seq!(N in -2..2 { g(N) });",
	"seq!(N in 0x0..0x3_u8 { a~N });",
	"seq![N in 1..3 { #(v~N,)* }];",
	"seq!{N in 0..2 { #(A~N)* #(B~N)* }}",
	"seq!(I in 0..2 { seq!(J in 0..2 { p~I~J }); });",
	"fn f<'a>(x: &'a str) -> i32 { seq!(N in 0..2 { \"s~N\" 'c' 1.5 N }) }",
	"N in 0..3 { #[cfg(x)] f~N }",
	"seq!(N in 3..1 { never });",
	"seq!(N 0..2 { x });",
	"seq!(N in 0..9223372036854775808 { x });",
	"a ( b [ c",
	"a ) b ] c",
	"/* block */ // line\nseq!(N in 0..1 { /* keep */ x~N })\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds *.sq files from ../../testdata when it exists.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".sq" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
