// Package export writes listing rows as BOM-prefixed CSV or as a single-sheet
// XLSX workbook.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", CSV:
		return CSV, nil
	case XLSX:
		return XLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Rows projects items through columns: the header is the column titles.
func Rows[T any](items []T, cols []listing.Column[T]) ([]string, [][]string) {
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		r := make([]string, len(cols))
		for i, c := range cols {
			if c.Value != nil {
				r[i] = c.Value(item)
			}
		}
		rows = append(rows, r)
	}
	return header, rows
}

// FileName is <entity>_<YYYYMMDD>.<ext>.
func FileName(entity string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", entity, now.Format("20060102"), format)
}

func Write(w io.Writer, format Format, sheet string, header []string, rows [][]string) error {
	switch format {
	case XLSX:
		return WriteXLSX(w, sheet, header, rows)
	default:
		return WriteCSV(w, header, rows)
	}
}

// WriteCSV quotes fields containing a comma, quote or line break and doubles
// embedded quotes.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return errors.Wrap(err, "write bom")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "write rows")
	}
	return nil
}

// ReadCSV parses CSV produced by WriteCSV (or any BOM-prefixed export).
// Records end at LF or CRLF. Inside a quoted field every byte is kept as is,
// so a CR written by WriteCSV reads back unchanged.
func ReadCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(stripUTF8BOM(bufio.NewReader(r)))
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}

	var (
		records  [][]string
		record   []string
		field    strings.Builder
		quoted   bool
		inRecord bool
	)
	endField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	for i := 0; i < len(data); i++ {
		c := data[i]
		if quoted {
			if c != '"' {
				field.WriteByte(c)
			} else if i+1 < len(data) && data[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				quoted = false
			}
			continue
		}
		switch c {
		case '\n':
			if inRecord {
				endField()
				records = append(records, record)
			}
			record, inRecord = nil, false
			continue
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			field.WriteByte(c)
		case ',':
			endField()
		case '"':
			if field.Len() == 0 {
				quoted = true
			} else {
				field.WriteByte(c)
			}
		default:
			field.WriteByte(c)
		}
		inRecord = true
	}
	if quoted {
		return nil, errors.Errorf("csv record %d: unterminated quoted field", len(records)+1)
	}
	if inRecord {
		endField()
		records = append(records, record)
	}
	return records, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

const maxSheetName = 31

func WriteXLSX(w io.Writer, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if len([]rune(sheet)) > maxSheetName {
		sheet = string([]rune(sheet)[:maxSheetName])
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	if len(header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return errors.Wrap(err, "apply header style")
		}
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errors.Wrap(err, "cell name")
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return errors.Wrapf(err, "write row %d", rowNum)
	}
	return nil
}
