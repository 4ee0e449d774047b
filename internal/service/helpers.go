package service

import (
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// ProjectSummary aggregates task counts and progress for one project.
type ProjectSummary struct {
	Tasks       int
	WBSNodes    int
	Activities  int
	Milestones  int
	Critical    int
	Completed   int
	InProgress  int
	NotStarted  int
	Resources   int
	Relations   int
	Assignments int

	// ProgressPct is the mean percent complete of activities weighted by
	// original duration. Milestones count with weight one.
	ProgressPct float64

	Start  *time.Time
	Finish *time.Time
}

// SummarizeProject computes the summary counts of p. WBS nodes are the tasks
// without an activity ID.
func SummarizeProject(p *domain.Project) ProjectSummary {
	s := ProjectSummary{
		Tasks:       len(p.Tasks),
		Resources:   len(p.Resources),
		Relations:   len(p.Relations),
		Assignments: len(p.Assignments),
	}

	var weighted, weight float64
	for i := range p.Tasks {
		t := &p.Tasks[i]
		if t.ActivityID == "" {
			s.WBSNodes++
			continue
		}
		s.Activities++
		if t.Milestone {
			s.Milestones++
		}
		if t.Critical {
			s.Critical++
		}
		switch {
		case t.ActualFinish != nil || t.PercentComplete >= 100:
			s.Completed++
		case t.ActualStart != nil || t.PercentComplete > 0:
			s.InProgress++
		default:
			s.NotStarted++
		}

		w := t.Duration.Value
		if w <= 0 {
			w = 1
		}
		weighted += t.PercentComplete * w
		weight += w

		s.Start = domain.MinTime(s.Start, t.Start)
		s.Finish = domain.MaxTime(s.Finish, t.Finish)
	}
	if weight > 0 {
		s.ProgressPct = weighted / weight
	}
	return s
}
