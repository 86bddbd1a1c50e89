package views

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/viewmodels"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

// DetailView shows one request with its timeline and history.
type DetailView struct {
	requests   *services.RequestService
	approvals  *services.ApprovalService
	translator *intl.Translator

	detail   services.Detail
	timeline []viewmodels.TimelineStep
	buttons  []*ui.Button
	loaded   bool
}

func NewDetailView(requests *services.RequestService, approvals *services.ApprovalService, tr *intl.Translator) *DetailView {
	return &DetailView{requests: requests, approvals: approvals, translator: tr}
}

func (v *DetailView) Load(ctx context.Context, id int64) error {
	d, err := v.requests.Detail(ctx, id)
	if err != nil {
		return err
	}
	v.detail = d
	v.timeline = mappers.WorkflowToTimeline(d.Workflow, d.Request)
	v.buttons = v.approvals.Actions(d.Request)
	v.loaded = true
	return nil
}

func (v *DetailView) Request() absencerequest.Request     { return v.detail.Request }
func (v *DetailView) Timeline() []viewmodels.TimelineStep { return v.timeline }
func (v *DetailView) Buttons() []*ui.Button               { return v.buttons }

// Perform runs cmd and, on success, reloads request, workflow and history.
func (v *DetailView) Perform(ctx context.Context, cmd absencerequest.Command) error {
	if !v.loaded {
		return fmt.Errorf("detail view not loaded")
	}
	var btn *ui.Button
	for _, b := range v.buttons {
		if b.Action == string(cmd.Action) {
			btn = b
		}
	}
	if _, err := v.approvals.Perform(ctx, v.detail.Request, cmd, btn); err != nil {
		return err
	}
	return v.Load(ctx, v.detail.Request.ID)
}

func (v *DetailView) Render(w io.Writer) error {
	r := v.detail.Request
	t := v.translator
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", fmt.Sprint(r.ID)},
		{"Người gửi", r.RequesterName},
		{"Phòng ban", r.DepartmentName},
		{"Loại nghỉ", firstNonEmpty(r.AbsenceTypeName, r.AbsenceType)},
		{"Thời gian", r.StartDate + " → " + r.EndDate},
		{"Số ngày", r.TotalDays.String()},
		{"Lý do", r.Reason},
		{"Trạng thái", t.T("Absence.Status."+string(r.Status), nil)},
		{"Cấp duyệt", t.T("Absence.Level."+string(r.ApprovalLevel), nil)},
		{"Người duyệt", r.CurrentApproverName},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(v.timeline) > 0 {
		fmt.Fprintln(w)
		for i, s := range v.timeline {
			fmt.Fprintf(w, "%d. %s %s - %s", i+1, stateMarker(s.State), t.T("Absence.Level."+s.Level, nil), t.T("Absence.Step."+string(s.State), nil))
			if s.TimeoutHours > 0 {
				fmt.Fprintf(w, " (%dh)", s.TimeoutHours)
			}
			fmt.Fprintln(w)
		}
	}

	if len(v.detail.History) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, h := range v.detail.History {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.CreatedAt, h.ActorName, h.Action, h.Comment)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(v.buttons) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderButtons(v.buttons))
	}
	return nil
}

func stateMarker(s viewmodels.StepState) string {
	switch s {
	case viewmodels.StepCompleted:
		return "[x]"
	case viewmodels.StepCurrent:
		return "[>]"
	case viewmodels.StepRejected:
		return "[!]"
	default:
		return "[ ]"
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
