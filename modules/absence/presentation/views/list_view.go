package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

// ListView is the absence request table with per-row action buttons. Every
// successful action reloads the whole list from the portal.
type ListView struct {
	requests   *services.RequestService
	approvals  *services.ApprovalService
	translator *intl.Translator
	table      *listing.Table[absencerequest.Request]
	buttons    map[int64][]*ui.Button
}

func NewListView(requests *services.RequestService, approvals *services.ApprovalService, tr *intl.Translator, pageSize int) *ListView {
	return &ListView{
		requests:   requests,
		approvals:  approvals,
		translator: tr,
		table:      listing.NewTable(mappers.RequestColumns(), pageSize),
		buttons:    map[int64][]*ui.Button{},
	}
}

func (v *ListView) Table() *listing.Table[absencerequest.Request] {
	return v.table
}

func (v *ListView) Load(ctx context.Context) error {
	items, err := v.requests.List(ctx)
	if err != nil {
		return err
	}
	page := v.table.View().Number
	v.table.Load(items)
	v.table.GoTo(page)
	v.buttons = make(map[int64][]*ui.Button, len(items))
	for _, r := range items {
		v.buttons[r.ID] = v.approvals.Actions(r)
	}
	return nil
}

func (v *ListView) ApplyFilters(f mappers.Filters) {
	for name, p := range f.Predicates() {
		v.table.SetFilter(name, p)
	}
}

func (v *ListView) Buttons(id int64) []*ui.Button {
	return v.buttons[id]
}

func (v *ListView) button(id int64, a absencerequest.Action) *ui.Button {
	for _, b := range v.buttons[id] {
		if b.Action == string(a) {
			return b
		}
	}
	return nil
}

// Act runs cmd on the loaded request id and reloads the list on success.
func (v *ListView) Act(ctx context.Context, id int64, cmd absencerequest.Command) error {
	r, ok := v.table.Find(func(r absencerequest.Request) bool { return r.ID == id })
	if !ok {
		return fmt.Errorf("request %d is not in the loaded list", id)
	}
	if _, err := v.approvals.Perform(ctx, r, cmd, v.button(id, cmd.Action)); err != nil {
		return err
	}
	return v.Load(ctx)
}

var listColumns = []string{"id", "requester_name", "absence_type", "start_date", "end_date", "total_days", "status", "approval_level"}

func (v *ListView) Render(w io.Writer) error {
	page := v.table.View()
	if page.Total == 0 {
		_, err := fmt.Fprintln(w, v.translator.T("Absence.Empty", nil))
		return err
	}
	cols := v.table.Columns()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := make([]string, 0, len(listColumns)+1)
	for _, key := range listColumns {
		c, _ := listing.FindColumn(cols, key)
		header = append(header, c.Title)
	}
	header = append(header, "")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range page.Items {
		cells := make([]string, 0, len(listColumns)+1)
		for _, key := range listColumns {
			c, _ := listing.FindColumn(cols, key)
			val := c.Value(r)
			switch key {
			case "status":
				val = v.translator.T("Absence.Status."+val, nil)
			case "approval_level":
				val = v.translator.T("Absence.Level."+val, nil)
			}
			cells = append(cells, val)
		}
		cells = append(cells, renderButtons(v.buttons[r.ID]))
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d/%d (%d)\n", page.Number, page.Pages, page.Total)
	return err
}

func renderButtons(buttons []*ui.Button) string {
	labels := make([]string, 0, len(buttons))
	for _, b := range buttons {
		labels = append(labels, "["+b.Label+"]")
	}
	return strings.Join(labels, " ")
}
