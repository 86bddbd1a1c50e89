package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/viewmodels"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/views"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
)

type requestFilterFlags struct {
	filters mappers.Filters
	sort    string
	desc    bool
	page    int
}

func (f *requestFilterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.filters.Status, "status", "", "Filter by status")
	fs.StringVar(&f.filters.AbsenceType, "type", "", "Filter by absence type")
	fs.StringVar(&f.filters.Department, "department", "", "Filter by department name")
	fs.StringVar(&f.filters.Search, "search", "", "Free-text search over requester, reason and department")
	fs.StringVar(&f.filters.From, "from", "", "Start date from (YYYY-MM-DD)")
	fs.StringVar(&f.filters.To, "to", "", "Start date to (YYYY-MM-DD)")
	fs.StringVar(&f.sort, "sort", "", "Sort column key")
	fs.BoolVar(&f.desc, "desc", false, "Sort descending")
	fs.IntVar(&f.page, "page", 1, "Page number")
}

func applySort[T any](t *listing.Table[T], key string, desc bool) error {
	if key == "" {
		return nil
	}
	dir := listing.Asc
	if desc {
		dir = listing.Desc
	}
	if err := t.SetSort(key, dir); err != nil {
		return withCode(exitUsage, err)
	}
	return nil
}

func newRequestsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Absence requests and approvals",
	}
	cmd.AddCommand(
		newRequestsListCmd(rt),
		newRequestsShowCmd(rt),
		newRequestActionCmd(rt, absencerequest.ActionApprove, "Approve a pending request"),
		newRequestActionCmd(rt, absencerequest.ActionReject, "Reject a pending request"),
		newRequestActionCmd(rt, absencerequest.ActionDelegate, "Delegate a pending request to another approver"),
		newRequestActionCmd(rt, absencerequest.ActionCancel, "Cancel your own pending request"),
		newRequestsStatsCmd(rt),
		newRequestsExportCmd(rt),
	)
	return cmd
}

func (rt *runtime) requestList(cmd *cobra.Command, f requestFilterFlags) (*views.ListView, error) {
	if err := f.filters.Validate(); err != nil {
		return nil, rt.reject(err)
	}
	v := views.NewListView(rt.requests(), rt.approvals(), rt.app.Translator(), rt.conf.PageSize)
	if err := v.Load(cmd.Context()); err != nil {
		return nil, err
	}
	v.ApplyFilters(f.filters)
	if err := applySort(v.Table(), f.sort, f.desc); err != nil {
		return nil, err
	}
	v.Table().GoTo(f.page)
	return v, nil
}

func newRequestsListCmd(rt *runtime) *cobra.Command {
	var f requestFilterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List absence requests",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.requestList(cmd, f)
			if err != nil {
				return err
			}
			return rt.emit(toPageJSON(v.Table().View()), v.Render)
		},
	}
	f.bind(cmd)
	return cmd
}

type requestDetailJSON struct {
	Request  absencerequest.Request    `json:"request"`
	Timeline []viewmodels.TimelineStep `json:"timeline"`
	Actions  []absencerequest.Action   `json:"actions"`
}

func newRequestsShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a request with its approval timeline and history",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v := views.NewDetailView(rt.requests(), rt.approvals(), rt.app.Translator())
			if err := v.Load(cmd.Context(), id); err != nil {
				return err
			}
			r := v.Request()
			return rt.emit(requestDetailJSON{
				Request:  r,
				Timeline: v.Timeline(),
				Actions:  r.AvailableActions(rt.approvals().Viewer()),
			}, v.Render)
		},
	}
}

func newRequestActionCmd(rt *runtime, action absencerequest.Action, short string) *cobra.Command {
	var comment string
	var delegateTo int64
	cmd := &cobra.Command{
		Use:   string(action) + " <id>",
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			command := absencerequest.Command{Action: action, Comment: comment}
			if cmd.Flags().Changed("to") {
				command.DelegateTo = &delegateTo
			}
			r, err := rt.requests().Get(cmd.Context(), id)
			if err != nil {
				return rt.reject(err)
			}
			updated, err := rt.approvals().Perform(cmd.Context(), r, command, nil)
			if err != nil {
				return toasted(err)
			}
			return rt.emit(updated, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "#%d %s\n", updated.ID, rt.app.Translator().T("Absence.Status."+string(updated.Status), nil))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "Comment sent with the action")
	if action == absencerequest.ActionDelegate {
		cmd.Flags().Int64Var(&delegateTo, "to", 0, "User id of the new approver")
	}
	return cmd
}

type statsJSON struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Unknown  int            `json:"unknown"`
}

func newRequestsStatsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count requests per status",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rt.requests().Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := statsJSON{Total: st.Total, ByStatus: map[string]int{}, Unknown: st.Unknown}
			for s, n := range st.ByStatus {
				out.ByStatus[string(s)] = n
			}
			return rt.emit(out, func(w io.Writer) error {
				tr := rt.app.Translator()
				for _, s := range absencerequest.Statuses {
					if _, err := fmt.Fprintf(w, "%s\t%d\n", tr.T("Absence.Status."+string(s), nil), st.ByStatus[s]); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(w, "Σ\t%d\n", st.Total)
				return err
			})
		},
	}
}

func newRequestsExportCmd(rt *runtime) *cobra.Command {
	var f requestFilterFlags
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered request list to CSV or XLSX",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.requestList(cmd, f)
			if err != nil {
				return err
			}
			return writeExport(rt, "requests", v.Table().Filtered(), mappers.RequestColumns(), opts)
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "csv", "Export format: csv|xlsx")
	cmd.Flags().StringVar(&opts.file, "file", "", "Output file (default <entity>_<date>.<ext>)")
	return cmd
}
