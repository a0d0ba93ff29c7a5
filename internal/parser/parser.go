// Package parser selects an ingestion format by file name and loads the file
// into a dataset.Table.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
)

// Parser decodes one tabular file format.
type Parser interface {
	CanParse(filename string) bool
	Parse(r io.Reader, name string, opt dataset.Options) (dataset.Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("only CSV files are supported")

// ParseFile picks a parser from the file extension and loads path. An
// unsupported extension is rejected before the file is opened.
func ParseFile(path string, opt dataset.Options) (dataset.Table, error) {
	var p Parser
	for _, cand := range registry {
		if cand.CanParse(path) {
			p = cand
			break
		}
	}
	if p == nil {
		return dataset.Table{}, common.InputFormat(fmt.Sprintf("unsupported file %s", filepath.Base(path)), ErrUnsupported)
	}
	f, err := os.Open(path)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return p.Parse(f, filepath.Base(path), opt)
}

func init() {
	Register(csvParser{})
}
