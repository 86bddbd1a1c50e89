package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/capture"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

// Fetch is either the list or the history endpoint.
type Fetch func(ctx context.Context, p checkin.ListParams) ([]checkin.Checkin, int, error)

var listColumns = []string{"id", "user_name", "checkin_type", "area_name", "distance", "status", "created_at"}

type ListView struct {
	fetch      Fetch
	fetchSize  int
	table      *listing.Table[checkin.Checkin]
	translator *intl.Translator
}

func NewListView(fetch Fetch, tr *intl.Translator, pageSize, fetchSize int) *ListView {
	return &ListView{
		fetch:      fetch,
		fetchSize:  fetchSize,
		table:      listing.NewTable(mappers.CheckinColumns(), pageSize),
		translator: tr,
	}
}

func (v *ListView) Table() *listing.Table[checkin.Checkin] { return v.table }

// Load fetches pages until the server count is reached.
func (v *ListView) Load(ctx context.Context) error {
	var all []checkin.Checkin
	for page := 1; ; page++ {
		items, total, err := v.fetch(ctx, checkin.ListParams{Page: page, PageSize: v.fetchSize})
		if err != nil {
			return err
		}
		all = append(all, items...)
		if len(items) == 0 || len(all) >= total || v.fetchSize <= 0 || page >= listing.PageCount(total, v.fetchSize) {
			break
		}
	}
	v.table.Load(all)
	return nil
}

func (v *ListView) ApplyFilters(f mappers.Filters) {
	for name, p := range f.Predicates() {
		v.table.SetFilter(name, p)
	}
}

func (v *ListView) Render(w io.Writer) error {
	page := v.table.View()
	if page.Total == 0 {
		_, err := fmt.Fprintln(w, v.translator.T("Checkin.Empty", nil))
		return err
	}
	cols := v.table.Columns()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := make([]string, 0, len(listColumns))
	for _, key := range listColumns {
		c, _ := listing.FindColumn(cols, key)
		header = append(header, c.Title)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, item := range page.Items {
		cells := make([]string, 0, len(listColumns))
		for _, key := range listColumns {
			c, _ := listing.FindColumn(cols, key)
			val := c.Value(item)
			if key == "checkin_type" && val != "" {
				val = v.translator.T("Checkin."+val, nil)
			}
			cells = append(cells, val)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d/%d (%d)\n", page.Number, page.Pages, page.Total)
	return err
}

// RenderFlow prints both capture branches and the submit button.
func RenderFlow(w io.Writer, tr *intl.Translator, st capture.State) error {
	loc := string(st.Location)
	if st.Location == capture.LocationLocated {
		loc = fmt.Sprintf("%s (%.6f, %.6f)", loc, st.Fix.Latitude, st.Fix.Longitude)
	}
	submit := "[" + tr.T("Checkin.Submit", nil) + "]"
	if !st.CanSubmit {
		submit += " (disabled)"
	}
	_, err := fmt.Fprintf(w, "%s: %s\n%s: %s (%s)\n%s\n",
		tr.T("Checkin.Location", nil), loc,
		tr.T("Checkin.Camera", nil), st.Camera, st.Facing,
		submit)
	return err
}
