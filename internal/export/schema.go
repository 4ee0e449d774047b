// Package export serialises reconstructed projects as nested YAML or JSON
// documents.
package export

// Document is the top-level structure written by Write.
type Document struct {
	Project     ProjectDoc      `json:"project" yaml:"project"`
	Calendars   []CalendarDoc   `json:"calendars,omitempty" yaml:"calendars,omitempty"`
	Tasks       []TaskDoc       `json:"tasks" yaml:"tasks"`
	Resources   []ResourceDoc   `json:"resources,omitempty" yaml:"resources,omitempty"`
	Relations   []RelationDoc   `json:"relations,omitempty" yaml:"relations,omitempty"`
	Assignments []AssignmentDoc `json:"assignments,omitempty" yaml:"assignments,omitempty"`
}

// ProjectDoc holds the header properties. Dates are YYYY-MM-DD.
type ProjectDoc struct {
	Name            string  `json:"name" yaml:"name"`
	Company         string  `json:"company,omitempty" yaml:"company,omitempty"`
	Prefix          string  `json:"prefix" yaml:"prefix"`
	FileApplication string  `json:"file_application" yaml:"file_application"`
	FileType        string  `json:"file_type" yaml:"file_type"`
	StartDate       *string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	FinishDate      *string `json:"finish_date,omitempty" yaml:"finish_date,omitempty"`
	StatusDate      *string `json:"status_date,omitempty" yaml:"status_date,omitempty"`
	DefaultCalendar string  `json:"default_calendar,omitempty" yaml:"default_calendar,omitempty"`
}

// CalendarDoc lists the working days of a calendar.
type CalendarDoc struct {
	Name        string   `json:"name" yaml:"name"`
	WorkingDays []string `json:"working_days" yaml:"working_days"`
	DayMinutes  int      `json:"day_minutes" yaml:"day_minutes"`
}

// TaskDoc is one task with its children nested under it. ID is the task's
// position in the flat task list and is what relations and assignments
// refer to. OutlineLevel is 1 for root tasks.
type TaskDoc struct {
	ID              int       `json:"id" yaml:"id"`
	OutlineLevel    int       `json:"outline_level" yaml:"outline_level"`
	ActivityID      string    `json:"activity_id,omitempty" yaml:"activity_id,omitempty"`
	WBS             string    `json:"wbs,omitempty" yaml:"wbs,omitempty"`
	Name            string    `json:"name" yaml:"name"`
	Summary         bool      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Milestone       bool      `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Critical        bool      `json:"critical,omitempty" yaml:"critical,omitempty"`
	PercentComplete float64   `json:"percent_complete" yaml:"percent_complete"`
	DurationDays    float64   `json:"duration_days,omitempty" yaml:"duration_days,omitempty"`
	RemainingDays   float64   `json:"remaining_days,omitempty" yaml:"remaining_days,omitempty"`
	Start           *string   `json:"start,omitempty" yaml:"start,omitempty"`
	Finish          *string   `json:"finish,omitempty" yaml:"finish,omitempty"`
	ActualStart     *string   `json:"actual_start,omitempty" yaml:"actual_start,omitempty"`
	ActualFinish    *string   `json:"actual_finish,omitempty" yaml:"actual_finish,omitempty"`
	EarlyStart      *string   `json:"early_start,omitempty" yaml:"early_start,omitempty"`
	EarlyFinish     *string   `json:"early_finish,omitempty" yaml:"early_finish,omitempty"`
	LateStart       *string   `json:"late_start,omitempty" yaml:"late_start,omitempty"`
	LateFinish      *string   `json:"late_finish,omitempty" yaml:"late_finish,omitempty"`
	TotalSlackDays  *float64  `json:"total_slack_days,omitempty" yaml:"total_slack_days,omitempty"`
	FreeSlackDays   *float64  `json:"free_slack_days,omitempty" yaml:"free_slack_days,omitempty"`
	Constraint      string    `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	ConstraintDate  *string   `json:"constraint_date,omitempty" yaml:"constraint_date,omitempty"`
	Children        []TaskDoc `json:"children,omitempty" yaml:"children,omitempty"`
}

// ResourceDoc is one resource.
type ResourceDoc struct {
	ID   int    `json:"id" yaml:"id"`
	Code string `json:"code" yaml:"code"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RelationDoc links two tasks by ID.
type RelationDoc struct {
	Predecessor int     `json:"predecessor" yaml:"predecessor"`
	Successor   int     `json:"successor" yaml:"successor"`
	Type        string  `json:"type" yaml:"type"`
	LagDays     float64 `json:"lag_days" yaml:"lag_days"`
}

// AssignmentDoc attaches a resource code to a task ID.
type AssignmentDoc struct {
	Task     int    `json:"task" yaml:"task"`
	Resource string `json:"resource" yaml:"resource"`
}
