package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options controls how delimited text is decoded into a Table.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t' on the header line.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// MissingTokens are cell values (after trimming) treated as missing.
	MissingTokens []string
}

// DefaultMissingTokens mirrors the usual NA spellings found in exported spreadsheets.
var DefaultMissingTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// DefaultOptions returns reasonable defaults for decoding.
func DefaultOptions() Options {
	return Options{MissingTokens: DefaultMissingTokens}
}

// ReadCSV decodes delimited text with a header row into a Table. A column is
// numeric when every non-missing cell parses as a number; otherwise it is text.
func ReadCSV(r io.Reader, name string, opt Options) (Table, error) {
	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	delim := opt.Delimiter
	if delim == 0 {
		first, err := br.Peek(br.Size())
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return Table{}, common.InputFormat("read header", err)
		}
		delim = sniffDelimiter(string(first))
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, common.InputFormat("empty dataset: no header row", nil)
		}
		return Table{}, common.InputFormat("read header", err)
	}
	ncol := len(header)
	names := make([]string, ncol)
	seen := make(map[string]struct{}, ncol)
	for i, h := range header {
		hn := strings.TrimSpace(h)
		if hn == "" {
			hn = fmt.Sprintf("unnamed_%d", i+1)
		}
		if _, dup := seen[hn]; dup {
			return Table{}, common.InputFormat(fmt.Sprintf("duplicate column name %q", hn), nil)
		}
		seen[hn] = struct{}{}
		names[i] = hn
	}

	missing := make(map[string]struct{}, len(opt.MissingTokens))
	for _, tok := range opt.MissingTokens {
		missing[tok] = struct{}{}
	}

	// Per-column accumulators
	type colAcc struct {
		raw     []string
		valid   []bool
		nums    []float64
		numeric bool
	}
	cols := make([]*colAcc, ncol)
	for i := range cols {
		cols[i] = &colAcc{numeric: true}
	}

	rows := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Table{}, common.InputFormat(fmt.Sprintf("read row %d", rows+1), err)
		}
		rows++
		if len(rec) > ncol {
			return Table{}, common.InputFormat(fmt.Sprintf("row %d has %d fields, header has %d", rows, len(rec), ncol), nil)
		}
		// Normalize length
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		for j := 0; j < ncol; j++ {
			c := cols[j]
			v := strings.TrimSpace(rec[j])
			if _, ok := missing[v]; ok {
				c.raw = append(c.raw, "")
				c.valid = append(c.valid, false)
				c.nums = append(c.nums, 0)
				continue
			}
			c.raw = append(c.raw, v)
			c.valid = append(c.valid, true)
			if !c.numeric {
				continue
			}
			x, ok := parseNumeric(v, opt)
			if !ok {
				c.numeric = false
				continue
			}
			c.nums = append(c.nums, x)
		}
	}
	if rows == 0 {
		return Table{}, common.InputFormat("empty dataset: header only", nil)
	}

	out := make([]Column, ncol)
	for j, c := range cols {
		if c.numeric {
			out[j] = NumericColumn(names[j], NewVector(c.nums, c.valid))
		} else {
			out[j] = TextColumn(names[j], NewLabels(c.raw, c.valid))
		}
	}
	t, err := New(name, out...)
	if err != nil {
		return Table{}, common.InputFormat("build table", err)
	}
	return t, nil
}

// sniffDelimiter picks the most frequent of ',', ';', '\t' on the first line.
func sniffDelimiter(head string) rune {
	if i := strings.IndexAny(head, "\r\n"); i >= 0 {
		head = head[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(head, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
