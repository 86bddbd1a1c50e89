package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/absencetest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/views"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
)

func requests() []absencerequest.Request {
	return []absencerequest.Request{
		{ID: 1, RequesterID: 5, RequesterName: "Trần Thị B", AbsenceType: "annual", StartDate: "2024-05-02", EndDate: "2024-05-03", TotalDays: 2, Status: absencerequest.StatusPending, ApprovalLevel: absencerequest.LevelDepartmentManager, CanApprove: true, CreatedAt: "2024-04-30T08:00:00Z"},
		{ID: 2, RequesterID: 5, RequesterName: "Trần Thị B", AbsenceType: "sick", StartDate: "2024-04-10", EndDate: "2024-04-10", TotalDays: 1, Status: absencerequest.StatusPending, ApprovalLevel: absencerequest.LevelDepartmentManager, CanApprove: false, CreatedAt: "2024-04-09T08:00:00Z"},
		{ID: 3, RequesterID: 7, RequesterName: "Lê Văn C", AbsenceType: "annual", StartDate: "2024-03-01", EndDate: "2024-03-01", TotalDays: 0.5, Status: absencerequest.StatusApproved, ApprovalLevel: absencerequest.LevelFinalApproved, CanApprove: true, CreatedAt: "2024-02-20T08:00:00Z"},
	}
}

func newViews(t *testing.T, viewer absencerequest.Viewer) (*absencetest.Backend, *views.ListView, *views.DetailView) {
	t.Helper()
	backend := absencetest.New(t, requests()...)
	repo := api.NewRequestRepository(backend.Client(t))
	tr := intl.NewTranslator(intl.MustLoadBundle(), "vi")
	approvals := services.NewApprovalService(services.ApprovalOptions{
		Repository: repo,
		EventBus:   eventbus.NewEventPublisher(logging.Nop()),
		Translator: tr,
		Viewer:     viewer,
	})
	reqs := services.NewRequestService(repo)
	return backend, views.NewListView(reqs, approvals, tr, 10), views.NewDetailView(reqs, approvals, tr)
}

func actionsOf(v *views.ListView, id int64) []string {
	var out []string
	for _, b := range v.Buttons(id) {
		out = append(out, b.Action)
	}
	return out
}

func TestListView_ButtonsFollowCanApprove(t *testing.T) {
	t.Parallel()

	_, list, _ := newViews(t, absencerequest.Viewer{ID: 7})
	require.NoError(t, list.Load(context.Background()))

	require.Equal(t, []string{"approve", "reject", "delegate"}, actionsOf(list, 1))
	require.Empty(t, actionsOf(list, 2))
	require.Empty(t, actionsOf(list, 3))
}

func TestListView_CancelOnlyForRequester(t *testing.T) {
	t.Parallel()

	_, list, _ := newViews(t, absencerequest.Viewer{ID: 5})
	require.NoError(t, list.Load(context.Background()))
	require.Equal(t, []string{"approve", "reject", "delegate", "cancel"}, actionsOf(list, 1))
	require.Equal(t, []string{"cancel"}, actionsOf(list, 2))
}

func TestListView_FilterSortRender(t *testing.T) {
	t.Parallel()

	_, list, _ := newViews(t, absencerequest.Viewer{ID: 7})
	require.NoError(t, list.Load(context.Background()))

	list.ApplyFilters(mappers.Filters{Status: "pending"})
	require.NoError(t, list.Table().SortBy("start_date"))
	page := list.Table().View()
	require.Equal(t, 2, page.Total)
	require.Equal(t, int64(2), page.Items[0].ID)
	require.Equal(t, int64(1), page.Items[1].ID)

	var buf bytes.Buffer
	require.NoError(t, list.Render(&buf))
	out := buf.String()
	require.Contains(t, out, "Trần Thị B")
	require.Contains(t, out, "Chờ duyệt")
	require.Contains(t, out, "[Duyệt] [Từ chối] [Ủy quyền]")
	require.Contains(t, out, "1/1 (2)")
	require.NotContains(t, out, "Lê Văn C")

	list.ApplyFilters(mappers.Filters{Status: "rejected"})
	buf.Reset()
	require.NoError(t, list.Render(&buf))
	require.Equal(t, "Không có đơn nào\n", buf.String())
}

func TestListView_ActReloads(t *testing.T) {
	t.Parallel()

	backend, list, _ := newViews(t, absencerequest.Viewer{ID: 7})
	ctx := context.Background()
	require.NoError(t, list.Load(ctx))

	require.NoError(t, list.Act(ctx, 1, absencerequest.Command{Action: absencerequest.ActionApprove}))
	require.Len(t, backend.Commands(), 1)
	r, ok := list.Table().Find(func(r absencerequest.Request) bool { return r.ID == 1 })
	require.True(t, ok)
	require.Equal(t, absencerequest.StatusApproved, r.Status)
	require.Empty(t, actionsOf(list, 1))

	require.Error(t, list.Act(ctx, 99, absencerequest.Command{Action: absencerequest.ActionApprove}))
}

func TestDetailView_LoadPerformRender(t *testing.T) {
	t.Parallel()

	backend, _, detail := newViews(t, absencerequest.Viewer{ID: 7})
	backend.SetWorkflow(1, absencerequest.Workflow{RequireDepartmentManager: true, DepartmentManagerTimeoutHours: 24, RequireHRApproval: true})
	backend.SetHistory(1, []absencerequest.HistoryEntry{{ID: 1, Action: absencerequest.HistorySubmitted, ActorName: "Trần Thị B", CreatedAt: "2024-04-30 08:00"}})
	ctx := context.Background()

	require.NoError(t, detail.Load(ctx, 1))
	require.Len(t, detail.Timeline(), 2)
	require.Len(t, detail.Buttons(), 3)

	var buf bytes.Buffer
	require.NoError(t, detail.Render(&buf))
	out := buf.String()
	require.Contains(t, out, "1. [>] Trưởng phòng - Đang xử lý (24h)")
	require.Contains(t, out, "2. [ ] Nhân sự - Sắp tới")
	require.Contains(t, out, "submitted")

	require.NoError(t, detail.Perform(ctx, absencerequest.Command{Action: absencerequest.ActionApprove}))
	require.Equal(t, absencerequest.StatusApproved, detail.Request().Status)
	require.Empty(t, detail.Buttons())

	buf.Reset()
	require.NoError(t, detail.Render(&buf))
	require.Contains(t, buf.String(), "1. [x] Trưởng phòng - Hoàn thành")
}
