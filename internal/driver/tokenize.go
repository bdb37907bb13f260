package driver

import (
	"fmt"
	"io"
	"os"

	"seq/internal/diag"
	"seq/internal/lexer"
	"seq/internal/source"
	"seq/internal/token"
	"seq/internal/tree"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Stdin is read for StdinPath; tests replace it.
var Stdin io.Reader = os.Stdin

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file into flat tokens, EOF included.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadInput(fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}, nil
}

type TreeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stream  *tree.Stream
	Bag     *diag.Bag
}

// ParseTree lexes one file and groups its tokens into trees.
func ParseTree(path string, maxDiagnostics int) (*TreeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadInput(fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	return &TreeResult{
		FileSet: fs,
		File:    file,
		Stream:  tree.Parse(file, diag.BagReporter{Bag: bag}),
		Bag:     bag,
	}, nil
}

func loadInput(fs *source.FileSet, path string) (source.FileID, error) {
	if path == StdinPath {
		data, err := io.ReadAll(Stdin)
		if err != nil {
			return 0, fmt.Errorf("read stdin: %w", err)
		}
		return fs.AddVirtual("<stdin>", data), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return id, nil
}
