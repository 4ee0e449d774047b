package export

import (
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

const dateLayout = "2006-01-02"

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func days(d *domain.Duration) *float64 {
	if d == nil {
		return nil
	}
	v := d.Value
	return &v
}

// FromProject converts p into a Document with the task hierarchy nested.
func FromProject(p *domain.Project) *Document {
	doc := &Document{
		Project: ProjectDoc{
			Name:            p.DisplayName(),
			Company:         p.Properties.Company,
			Prefix:          p.Properties.Prefix,
			FileApplication: p.Properties.FileApplication,
			FileType:        p.Properties.FileType,
			StartDate:       dateString(p.Properties.StartDate),
			FinishDate:      dateString(p.Properties.FinishDate),
			StatusDate:      dateString(p.Properties.StatusDate),
			DefaultCalendar: p.DefaultCalendar,
		},
		Tasks: make([]TaskDoc, 0, len(p.Roots)),
	}

	for _, c := range p.Calendars {
		cal := CalendarDoc{Name: c.Name, WorkingDays: []string{}}
		for d := time.Sunday; d <= time.Saturday; d++ {
			if c.IsWorkingDay(d) {
				cal.WorkingDays = append(cal.WorkingDays, d.String())
				if cal.DayMinutes == 0 {
					cal.DayMinutes = c.MinutesPerDay(d)
				}
			}
		}
		doc.Calendars = append(doc.Calendars, cal)
	}

	for _, id := range p.Roots {
		doc.Tasks = append(doc.Tasks, taskDoc(p, id))
	}
	for _, r := range p.Resources {
		doc.Resources = append(doc.Resources, ResourceDoc{ID: r.UniqueID, Code: r.Code, Name: r.Name})
	}
	for _, r := range p.Relations {
		doc.Relations = append(doc.Relations, RelationDoc{
			Predecessor: int(r.Predecessor),
			Successor:   int(r.Successor),
			Type:        string(r.Type),
			LagDays:     r.Lag.Value,
		})
	}
	for _, a := range p.Assignments {
		doc.Assignments = append(doc.Assignments, AssignmentDoc{Task: int(a.Task), Resource: a.ResourceCode})
	}
	return doc
}

func taskDoc(p *domain.Project, id domain.TaskID) TaskDoc {
	t := p.Task(id)
	d := TaskDoc{
		ID:              int(t.ID),
		OutlineLevel:    p.Depth(id) + 1,
		ActivityID:      t.ActivityID,
		WBS:             t.WBS,
		Name:            t.Name,
		Summary:         t.Summary,
		Milestone:       t.Milestone,
		Critical:        t.Critical,
		PercentComplete: t.PercentComplete,
		DurationDays:    t.Duration.Value,
		RemainingDays:   t.RemainingDuration.Value,
		Start:           dateString(t.Start),
		Finish:          dateString(t.Finish),
		ActualStart:     dateString(t.ActualStart),
		ActualFinish:    dateString(t.ActualFinish),
		EarlyStart:      dateString(t.EarlyStart),
		EarlyFinish:     dateString(t.EarlyFinish),
		LateStart:       dateString(t.LateStart),
		LateFinish:      dateString(t.LateFinish),
		TotalSlackDays:  days(t.TotalSlack),
		FreeSlackDays:   days(t.FreeSlack),
		Constraint:      string(t.ConstraintType),
		ConstraintDate:  dateString(t.ConstraintDate),
	}
	for _, c := range t.Children {
		d.Children = append(d.Children, taskDoc(p, c))
	}
	return d
}
