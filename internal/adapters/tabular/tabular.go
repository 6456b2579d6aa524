// Package tabular loads and writes CSV tables. Input files often come
// from spreadsheets, so the reader strips a UTF-8 BOM and tolerates
// ragged rows; the writer emits a BOM for the same tools.
package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/compas/internal/domain/model"
)

// utf8BOM is the byte-order mark spreadsheet exports prepend.
const utf8BOM = "\xef\xbb\xbf"

// Load reads a CSV file into a Table. The first record is the header;
// rows shorter than the header leave the missing cells empty, rows
// longer than the header drop the excess. Cell text is kept raw.
func Load(path string) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close() //nolint:errcheck // read-only close

	return Read(f)
}

// Read parses CSV from a reader into a Table.
func Read(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1 // ragged rows handled below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrLoad, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	table := model.NewTable(header)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row %d: %w", ErrLoad, table.Len()+2, err)
		}
		row := make(model.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Append(row)
	}
	return table, nil
}

// Write saves a Table as CSV with a UTF-8 BOM, in column order.
func Write(path string, t *model.Table) error {
	f, err := os.Create(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if werr := WriteTo(f, t); werr != nil {
		_ = f.Close()
		return werr
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteTo streams a Table as BOM-prefixed CSV to a writer.
func WriteTo(w io.Writer, t *model.Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	record := make([]string, len(t.Columns))
	for i := range t.Rows {
		for j, col := range t.Columns {
			record[j] = t.Rows[i][col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
