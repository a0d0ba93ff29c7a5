package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV serializes t with a header row, preserving column and row order.
// Missing cells are written empty.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	cols := t.cols
	rec := make([]string, len(cols))
	for i := 0; i < t.rows; i++ {
		for j, c := range cols {
			rec[j] = c.Cell(i)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
