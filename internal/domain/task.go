package domain

import "time"

// TaskID addresses a task within Project.Tasks.
type TaskID int

// NoTask marks the absence of a parent.
const NoTask TaskID = -1

type Task struct {
	ID       TaskID
	Parent   TaskID
	Children []TaskID

	ActivityID string
	WBS        string
	Name       string

	Summary   bool
	Milestone bool
	Critical  bool

	PercentComplete   float64
	Duration          Duration
	RemainingDuration Duration

	Start        *time.Time
	Finish       *time.Time
	ActualStart  *time.Time
	ActualFinish *time.Time
	EarlyStart   *time.Time
	EarlyFinish  *time.Time
	LateStart    *time.Time
	LateFinish   *time.Time

	TotalSlack  *Duration
	FreeSlack   *Duration
	StartSlack  *Duration
	FinishSlack *Duration

	ConstraintType ConstraintType
	ConstraintDate *time.Time
}

// HasChildren reports whether the task is a parent in the hierarchy.
func (t *Task) HasChildren() bool {
	return len(t.Children) > 0
}

// InferSlack backfills start and finish slack from total slack when they are
// not already set. The source format stores only total slack, so this is an
// approximation rather than a CPM result.
func (t *Task) InferSlack() {
	if t.TotalSlack == nil {
		return
	}
	if t.StartSlack == nil {
		s := *t.TotalSlack
		t.StartSlack = &s
	}
	if t.FinishSlack == nil {
		s := *t.TotalSlack
		t.FinishSlack = &s
	}
}

// SetConstraint records a scheduling constraint on the task.
func (t *Task) SetConstraint(kind ConstraintType, date *time.Time) {
	t.ConstraintType = kind
	t.ConstraintDate = copyTime(date)
}
