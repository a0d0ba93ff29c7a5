package parser

import (
	"io"
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvParser) Parse(r io.Reader, name string, opt dataset.Options) (dataset.Table, error) {
	return dataset.ReadCSV(r, name, opt)
}
