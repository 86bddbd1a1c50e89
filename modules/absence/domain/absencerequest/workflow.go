package absencerequest

import "sort"

// Workflow is the approval chain configured for one department and absence
// type.
type Workflow struct {
	ID             int64  `json:"id"`
	DepartmentName string `json:"department_name"`
	AbsenceType    string `json:"absence_type"`

	RequireDepartmentManager      bool `json:"require_department_manager"`
	DepartmentManagerTimeoutHours int  `json:"department_manager_timeout_hours"`
	RequireDepartmentDeputy       bool `json:"require_department_deputy"`
	DepartmentDeputyTimeoutHours  int  `json:"department_deputy_timeout_hours"`
	RequireOfficeDirector         bool `json:"require_office_director"`
	OfficeDirectorTimeoutHours    int  `json:"office_director_timeout_hours"`
	RequireOfficeDeputy           bool `json:"require_office_deputy"`
	OfficeDeputyTimeoutHours      int  `json:"office_deputy_timeout_hours"`
	RequireHRApproval             bool `json:"require_hr_approval"`
	HRApprovalTimeoutHours        int  `json:"hr_approval_timeout_hours"`
}

type Step struct {
	Level        Level
	Priority     int
	TimeoutHours int
}

// Steps returns the enabled steps ordered by priority.
func (w Workflow) Steps() []Step {
	candidates := []struct {
		enabled bool
		level   Level
		timeout int
	}{
		{w.RequireHRApproval, LevelHRApproval, w.HRApprovalTimeoutHours},
		{w.RequireOfficeDeputy, LevelOfficeDeputy, w.OfficeDeputyTimeoutHours},
		{w.RequireOfficeDirector, LevelOfficeDirector, w.OfficeDirectorTimeoutHours},
		{w.RequireDepartmentDeputy, LevelDepartmentDeputy, w.DepartmentDeputyTimeoutHours},
		{w.RequireDepartmentManager, LevelDepartmentManager, w.DepartmentManagerTimeoutHours},
	}
	steps := make([]Step, 0, len(candidates))
	for _, c := range candidates {
		if !c.enabled {
			continue
		}
		p, _ := c.level.Priority()
		steps = append(steps, Step{Level: c.level, Priority: p, TimeoutHours: c.timeout})
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Priority < steps[j].Priority
	})
	return steps
}

type HistoryAction string

const (
	HistorySubmitted HistoryAction = "submitted"
	HistoryApproved  HistoryAction = "approved"
	HistoryRejected  HistoryAction = "rejected"
	HistoryDelegated HistoryAction = "delegated"
	HistoryCancelled HistoryAction = "cancelled"
	HistoryCommented HistoryAction = "commented"
)

// HistoryEntry is one append-only audit record.
type HistoryEntry struct {
	ID        int64         `json:"id"`
	Action    HistoryAction `json:"action"`
	ActorID   int64         `json:"actor_id"`
	ActorName string        `json:"actor_name"`
	Level     Level         `json:"level"`
	Comment   string        `json:"comment"`
	CreatedAt string        `json:"created_at"`
}
