package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/export"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return withCode(exitFailure, fmt.Errorf("json encode: %w", err))
	}
	return nil
}

// emit writes v as one JSON line or hands off to the table renderer.
func (rt *runtime) emit(v any, table func(w io.Writer) error) error {
	if rt.output == outputJSON {
		return writeJSONLine(rt.out, v)
	}
	return table(rt.out)
}

type pageJSON[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

func toPageJSON[T any](p listing.Page[T]) pageJSON[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return pageJSON[T]{Items: items, Page: p.Number, Pages: p.Pages, Total: p.Total}
}

type exportOptions struct {
	format string
	file   string
}

// createFile fills path through write. A failed write or close removes the
// file so no truncated export is left behind.
func createFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}

// writeExport writes items through cols to opts.file, defaulting to
// <entity>_<date>.<ext> in the working directory.
func writeExport[T any](rt *runtime, entity string, items []T, cols []listing.Column[T], opts exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return withCode(exitUsage, err)
	}
	path := opts.file
	if path == "" {
		path = export.FileName(entity, format, time.Now())
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return withCode(exitFailure, err)
		}
	}
	header, rows := export.Rows(items, cols)
	err = createFile(path, func(w io.Writer) error {
		return export.Write(w, format, entity, header, rows)
	})
	if err != nil {
		return withCode(exitFailure, err)
	}

	type exportSummary struct {
		Status string `json:"status"`
		File   string `json:"file"`
		Rows   int    `json:"rows"`
	}
	return writeJSONLine(rt.out, exportSummary{Status: "exported", File: path, Rows: len(rows)})
}

// writeRecord prints one item as "title: value" lines.
func writeRecord[T any](w io.Writer, item T, cols []listing.Column[T]) error {
	for _, c := range cols {
		if _, err := fmt.Fprintf(w, "%s: %s\n", c.Title, c.Value(item)); err != nil {
			return err
		}
	}
	return nil
}
