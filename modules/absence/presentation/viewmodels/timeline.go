package viewmodels

type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepRejected  StepState = "rejected"
	StepUpcoming  StepState = "upcoming"
)

type TimelineStep struct {
	Level        string
	Priority     int
	TimeoutHours int
	State        StepState
}
