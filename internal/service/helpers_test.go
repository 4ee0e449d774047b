package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/testutil"
)

func TestSummarizeProject(t *testing.T) {
	p := testutil.NewTestProject("APEX")

	s := SummarizeProject(p)
	assert.Equal(t, 3, s.Tasks)
	assert.Equal(t, 1, s.WBSNodes)
	assert.Equal(t, 2, s.Activities)
	assert.Equal(t, 1, s.Critical)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.Zero(t, s.NotStarted)
	assert.Equal(t, 1, s.Resources)
	assert.Equal(t, 1, s.Relations)
	assert.Equal(t, 1, s.Assignments)
	// (100*5 + 40*10) / 15
	assert.InDelta(t, 60.0, s.ProgressPct, 0.001)
	require.NotNil(t, s.Start)
	require.NotNil(t, s.Finish)
	assert.Equal(t, time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), *s.Start)
	assert.Equal(t, time.Date(2020, 1, 24, 0, 0, 0, 0, time.UTC), *s.Finish)
}

func TestSummarizeProject_MilestoneWeight(t *testing.T) {
	p := domain.NewProject()
	m := p.Task(p.AddTask(domain.NoTask))
	m.ActivityID = "M1"
	m.Milestone = true
	m.PercentComplete = 100

	s := SummarizeProject(p)
	assert.Equal(t, 1, s.Milestones)
	assert.Equal(t, 100.0, s.ProgressPct)
	assert.Nil(t, s.Start)
}

func TestSummarizeProject_Empty(t *testing.T) {
	s := SummarizeProject(domain.NewProject())
	assert.Zero(t, s.Tasks)
	assert.Zero(t, s.ProgressPct)
}
