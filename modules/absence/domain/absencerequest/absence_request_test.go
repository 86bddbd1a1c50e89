package absencerequest_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
)

func TestAvailableActions(t *testing.T) {
	t.Parallel()

	me := absencerequest.Viewer{ID: 7}
	pending := absencerequest.Request{ID: 1, RequesterID: 3, Status: absencerequest.StatusPending, CanApprove: true}
	require.Equal(t, []absencerequest.Action{
		absencerequest.ActionApprove, absencerequest.ActionReject, absencerequest.ActionDelegate,
	}, pending.AvailableActions(me))

	pending.CanApprove = false
	require.Empty(t, pending.AvailableActions(me))

	pending.RequesterID = 7
	require.Equal(t, []absencerequest.Action{absencerequest.ActionCancel}, pending.AvailableActions(me))

	approved := pending
	approved.Status = absencerequest.StatusApproved
	approved.CanApprove = true
	require.Empty(t, approved.AvailableActions(me))
	require.False(t, approved.Allows(me, absencerequest.ActionCancel))
}

func TestCommand_JSONShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(absencerequest.Command{Action: absencerequest.ActionApprove})
	require.NoError(t, err)
	require.JSONEq(t, `{"action":"approve","comment":""}`, string(b))

	to := int64(42)
	b, err = json.Marshal(absencerequest.Command{Action: absencerequest.ActionDelegate, Comment: "bận", DelegateTo: &to})
	require.NoError(t, err)
	require.JSONEq(t, `{"action":"delegate","comment":"bận","delegate_to":42}`, string(b))
}

func TestWorkflowSteps_SortedByPriority(t *testing.T) {
	t.Parallel()

	w := absencerequest.Workflow{
		RequireHRApproval:             true,
		HRApprovalTimeoutHours:        48,
		RequireDepartmentManager:      true,
		DepartmentManagerTimeoutHours: 24,
		RequireOfficeDirector:         true,
	}
	steps := w.Steps()
	require.Len(t, steps, 3)
	require.Equal(t, absencerequest.LevelDepartmentManager, steps[0].Level)
	require.Equal(t, 24, steps[0].TimeoutHours)
	require.Equal(t, absencerequest.LevelOfficeDirector, steps[1].Level)
	require.Equal(t, absencerequest.LevelHRApproval, steps[2].Level)
	require.Equal(t, 5, steps[2].Priority)

	require.Empty(t, absencerequest.Workflow{}.Steps())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	require.True(t, absencerequest.StatusAutoApproved.Terminal())
	require.False(t, absencerequest.StatusPending.Terminal())
	require.False(t, absencerequest.Status("weird").Valid())
	require.True(t, absencerequest.StatusAutoRejected.Rejected())
}
