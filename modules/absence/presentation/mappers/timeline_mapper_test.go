package mappers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/mappers"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/viewmodels"
)

var fullWorkflow = absencerequest.Workflow{
	RequireDepartmentManager: true,
	RequireOfficeDirector:    true,
	RequireHRApproval:        true,
}

func states(steps []viewmodels.TimelineStep) []viewmodels.StepState {
	out := make([]viewmodels.StepState, len(steps))
	for i, s := range steps {
		out[i] = s.State
	}
	return out
}

const (
	done = viewmodels.StepCompleted
	cur  = viewmodels.StepCurrent
	rej  = viewmodels.StepRejected
	next = viewmodels.StepUpcoming
)

func TestWorkflowToTimeline(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		level  absencerequest.Level
		status absencerequest.Status
		want   []viewmodels.StepState
	}{
		{"just submitted", absencerequest.LevelEmployee, absencerequest.StatusPending, []viewmodels.StepState{cur, next, next}},
		{"at director", absencerequest.LevelOfficeDirector, absencerequest.StatusPending, []viewmodels.StepState{done, cur, next}},
		{"level not in workflow", absencerequest.LevelDepartmentDeputy, absencerequest.StatusPending, []viewmodels.StepState{done, cur, next}},
		{"approved", absencerequest.LevelFinalApproved, absencerequest.StatusApproved, []viewmodels.StepState{done, done, done}},
		{"auto approved mid chain", absencerequest.LevelOfficeDirector, absencerequest.StatusAutoApproved, []viewmodels.StepState{done, done, done}},
		{"rejected at hr", absencerequest.LevelHRApproval, absencerequest.StatusRejected, []viewmodels.StepState{done, done, rej}},
		{"auto rejected at manager", absencerequest.LevelDepartmentManager, absencerequest.StatusAutoRejected, []viewmodels.StepState{rej, next, next}},
		{"cancelled at director", absencerequest.LevelOfficeDirector, absencerequest.StatusCancelled, []viewmodels.StepState{done, next, next}},
		{"rejected past last step", absencerequest.LevelFinalApproved, absencerequest.StatusRejected, []viewmodels.StepState{done, done, rej}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := absencerequest.Request{ApprovalLevel: tc.level, Status: tc.status}
			require.Equal(t, tc.want, states(mappers.WorkflowToTimeline(fullWorkflow, r)))
		})
	}
}

func TestWorkflowToTimeline_OrderAndIdempotence(t *testing.T) {
	t.Parallel()

	r := absencerequest.Request{ApprovalLevel: absencerequest.LevelOfficeDirector, Status: absencerequest.StatusPending}
	first := mappers.WorkflowToTimeline(fullWorkflow, r)
	second := mappers.WorkflowToTimeline(fullWorkflow, r)
	require.Equal(t, first, second)

	require.Equal(t, "department_manager", first[0].Level)
	require.Equal(t, "office_director", first[1].Level)
	require.Equal(t, "hr_approval", first[2].Level)
	require.Equal(t, []int{1, 3, 5}, []int{first[0].Priority, first[1].Priority, first[2].Priority})

	require.Empty(t, mappers.WorkflowToTimeline(absencerequest.Workflow{}, r))
}
