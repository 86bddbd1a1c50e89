package absencerequest

import (
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusCancelled    Status = "cancelled"
	StatusAutoApproved Status = "auto_approved"
	StatusAutoRejected Status = "auto_rejected"
)

var Statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusAutoApproved,
	StatusAutoRejected,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal statuses accept no further client actions.
func (s Status) Terminal() bool {
	return s != StatusPending && s.Valid()
}

func (s Status) Approved() bool {
	return s == StatusApproved || s == StatusAutoApproved
}

func (s Status) Rejected() bool {
	return s == StatusRejected || s == StatusAutoRejected
}

type Level string

const (
	LevelEmployee          Level = "employee"
	LevelDepartmentManager Level = "department_manager"
	LevelDepartmentDeputy  Level = "department_deputy"
	LevelOfficeDirector    Level = "office_director"
	LevelOfficeDeputy      Level = "office_deputy"
	LevelHRApproval        Level = "hr_approval"
	LevelFinalApproved     Level = "final_approved"
)

var levelPriority = map[Level]int{
	LevelEmployee:          0,
	LevelDepartmentManager: 1,
	LevelDepartmentDeputy:  2,
	LevelOfficeDirector:    3,
	LevelOfficeDeputy:      4,
	LevelHRApproval:        5,
	LevelFinalApproved:     6,
}

// Priority orders levels along the approval chain. Unknown levels report
// false.
func (l Level) Priority() (int, bool) {
	p, ok := levelPriority[l]
	return p, ok
}

type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionDelegate Action = "delegate"
	ActionCancel   Action = "cancel"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionApprove, ActionReject, ActionDelegate, ActionCancel:
		return a, true
	}
	return "", false
}

// Request is an absence request as the portal serializes it.
type Request struct {
	ID                  int64          `json:"id"`
	RequesterID         int64          `json:"requester_id"`
	RequesterName       string         `json:"requester_name"`
	DepartmentName      string         `json:"department_name"`
	AbsenceType         string         `json:"absence_type"`
	AbsenceTypeName     string         `json:"absence_type_name"`
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date"`
	TotalDays           httpapi.Number `json:"total_days"`
	Reason              string         `json:"reason"`
	Status              Status         `json:"status"`
	ApprovalLevel       Level          `json:"approval_level"`
	CurrentApproverID   *int64         `json:"current_approver_id,omitempty"`
	CurrentApproverName string         `json:"current_approver_name"`
	CanApprove          bool           `json:"can_approve"`
	IsOwner             bool           `json:"is_owner"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
}

// Viewer is the signed-in user looking at a request.
type Viewer struct {
	ID int64
}

func (r Request) OwnedBy(v Viewer) bool {
	return r.IsOwner || (v.ID != 0 && v.ID == r.RequesterID)
}

// AvailableActions lists what the viewer may do, in button order.
func (r Request) AvailableActions(v Viewer) []Action {
	if r.Status != StatusPending {
		return nil
	}
	var out []Action
	if r.CanApprove {
		out = append(out, ActionApprove, ActionReject, ActionDelegate)
	}
	if r.OwnedBy(v) {
		out = append(out, ActionCancel)
	}
	return out
}

func (r Request) Allows(v Viewer, a Action) bool {
	for _, x := range r.AvailableActions(v) {
		if x == a {
			return true
		}
	}
	return false
}

// Command is the body of an approval action.
type Command struct {
	Action     Action `json:"action"`
	Comment    string `json:"comment"`
	DelegateTo *int64 `json:"delegate_to,omitempty"`
}
