package p3

import (
	"time"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
)

// fieldBinding copies one column of a row into a field of T. Absent values
// leave the field untouched.
type fieldBinding[T any] struct {
	column string
	apply  func(dst *T, row btrieve.Row, column string)
}

type fieldMap[T any] []fieldBinding[T]

func (m fieldMap[T]) apply(dst *T, row btrieve.Row) {
	for _, f := range m {
		f.apply(dst, row, f.column)
	}
}

// columns lists the source columns in mapping order.
func (m fieldMap[T]) columns() []string {
	out := make([]string, len(m))
	for n, f := range m {
		out[n] = f.column
	}
	return out
}

func textField[T any](column string, field func(*T) *string) fieldBinding[T] {
	return fieldBinding[T]{column: column, apply: func(dst *T, row btrieve.Row, column string) {
		if v, err := row.String(column); err == nil {
			*field(dst) = v
		}
	}}
}

func dateField[T any](column string, field func(*T) **time.Time) fieldBinding[T] {
	return fieldBinding[T]{column: column, apply: func(dst *T, row btrieve.Row, column string) {
		if v := row.DatePtr(column); v != nil {
			*field(dst) = v
		}
	}}
}

func durationField[T any](column string, field func(*T) *domain.Duration) fieldBinding[T] {
	return fieldBinding[T]{column: column, apply: func(dst *T, row btrieve.Row, column string) {
		if v, err := row.Duration(column); err == nil {
			*field(dst) = v
		}
	}}
}

func slackField[T any](column string, field func(*T) **domain.Duration) fieldBinding[T] {
	return fieldBinding[T]{column: column, apply: func(dst *T, row btrieve.Row, column string) {
		if v, err := row.Duration(column); err == nil {
			*field(dst) = &v
		}
	}}
}

func percentField[T any](column string, field func(*T) *float64) fieldBinding[T] {
	return fieldBinding[T]{column: column, apply: func(dst *T, row btrieve.Row, column string) {
		if v, err := row.Float(column); err == nil {
			*field(dst) = v
		}
	}}
}

var projectFields = fieldMap[domain.ProjectProperties]{
	dateField("PROJECT_START_DATE", func(p *domain.ProjectProperties) **time.Time { return &p.StartDate }),
	dateField("PROJECT_FINISH_DATE", func(p *domain.ProjectProperties) **time.Time { return &p.FinishDate }),
	dateField("CURRENT_DATA_DATE", func(p *domain.ProjectProperties) **time.Time { return &p.StatusDate }),
	textField("COMPANY_TITLE", func(p *domain.ProjectProperties) *string { return &p.Company }),
	textField("PROJECT_TITLE", func(p *domain.ProjectProperties) *string { return &p.Name }),
}

var resourceFields = fieldMap[domain.Resource]{
	textField("RES_TITLE", func(r *domain.Resource) *string { return &r.Name }),
	textField("RES_ID", func(r *domain.Resource) *string { return &r.Code }),
}

var taskFields = fieldMap[domain.Task]{
	textField("ACTIVITY_TITLE", func(t *domain.Task) *string { return &t.Name }),
	textField("ACTIVITY_ID", func(t *domain.Task) *string { return &t.ActivityID }),
	durationField("ORIGINAL_DURATION", func(t *domain.Task) *domain.Duration { return &t.Duration }),
	durationField("REMAINING_DURATION", func(t *domain.Task) *domain.Duration { return &t.RemainingDuration }),
	percentField("PERCENT_COMPLETE", func(t *domain.Task) *float64 { return &t.PercentComplete }),
	dateField("EARLY_START", func(t *domain.Task) **time.Time { return &t.EarlyStart }),
	dateField("LATE_START", func(t *domain.Task) **time.Time { return &t.LateStart }),
	dateField("EARLY_FINISH", func(t *domain.Task) **time.Time { return &t.EarlyFinish }),
	dateField("LATE_FINISH", func(t *domain.Task) **time.Time { return &t.LateFinish }),
	slackField("FREE_FLOAT", func(t *domain.Task) **domain.Duration { return &t.FreeSlack }),
	slackField("TOTAL_FLOAT", func(t *domain.Task) **domain.Duration { return &t.TotalSlack }),
}

// MappedColumns returns, per table type, the columns the reconstructor
// copies into the project.
func MappedColumns() map[string][]string {
	return map[string][]string{
		TableHeader:     projectFields.columns(),
		TableResources:  resourceFields.columns(),
		TableActivities: taskFields.columns(),
	}
}
