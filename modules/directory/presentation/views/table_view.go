package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

// Loader fetches the full collection for a view.
type Loader[T any] interface {
	All(ctx context.Context) ([]T, error)
}

// TableView is a client-side table over one directory collection.
type TableView[T any] struct {
	loader     Loader[T]
	table      *listing.Table[T]
	search     []func(T) string
	translator *intl.Translator
}

func NewTableView[T any](loader Loader[T], columns []listing.Column[T], search []func(T) string, tr *intl.Translator, pageSize int) *TableView[T] {
	return &TableView[T]{
		loader:     loader,
		table:      listing.NewTable(columns, pageSize),
		search:     search,
		translator: tr,
	}
}

func (v *TableView[T]) Table() *listing.Table[T] { return v.table }

func (v *TableView[T]) Load(ctx context.Context) error {
	items, err := v.loader.All(ctx)
	if err != nil {
		return err
	}
	v.table.Load(items)
	return nil
}

// Search filters on the view's text fields. An empty query clears it.
func (v *TableView[T]) Search(query string) {
	v.table.SetFilter("search", listing.TextSearch(query, v.search...))
}

func (v *TableView[T]) Render(w io.Writer) error {
	page := v.table.View()
	if page.Total == 0 {
		_, err := fmt.Fprintln(w, v.translator.T("Directory.Empty", nil))
		return err
	}
	cols := v.table.Columns()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, item := range page.Items {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Value(item)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d/%d (%d)\n", page.Number, page.Pages, page.Total)
	return err
}
