package mappers

import (
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/presentation/viewmodels"
)

// WorkflowToTimeline derives each enabled step's state from the request's
// approval level and status. It is pure: equal inputs give equal output.
//
// A level that is not one of the enabled steps positions the request at the
// first enabled step with a priority at or above it. Cancelled requests keep
// earlier steps completed and the rest upcoming.
func WorkflowToTimeline(w absencerequest.Workflow, r absencerequest.Request) []viewmodels.TimelineStep {
	steps := w.Steps()
	out := make([]viewmodels.TimelineStep, len(steps))
	cur := currentIndex(steps, r.ApprovalLevel)

	for i, s := range steps {
		out[i] = viewmodels.TimelineStep{
			Level:        string(s.Level),
			Priority:     s.Priority,
			TimeoutHours: s.TimeoutHours,
			State:        stepState(i, cur, len(steps), r.Status),
		}
	}
	return out
}

func currentIndex(steps []absencerequest.Step, level absencerequest.Level) int {
	p, ok := level.Priority()
	if !ok {
		return 0
	}
	for i, s := range steps {
		if s.Priority >= p {
			return i
		}
	}
	return len(steps)
}

func stepState(i, cur, n int, status absencerequest.Status) viewmodels.StepState {
	switch {
	case status.Approved():
		return viewmodels.StepCompleted
	case status.Rejected():
		// A rejection recorded past the last step lands on the last step.
		if cur >= n {
			cur = n - 1
		}
		switch {
		case i < cur:
			return viewmodels.StepCompleted
		case i == cur:
			return viewmodels.StepRejected
		}
		return viewmodels.StepUpcoming
	case status == absencerequest.StatusCancelled:
		if i < cur {
			return viewmodels.StepCompleted
		}
		return viewmodels.StepUpcoming
	default:
		switch {
		case i < cur:
			return viewmodels.StepCompleted
		case i == cur:
			return viewmodels.StepCurrent
		}
		return viewmodels.StepUpcoming
	}
}
