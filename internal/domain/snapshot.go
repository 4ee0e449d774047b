package domain

import "time"

// Snapshot is a stored copy of a reconstructed project.
type Snapshot struct {
	ID              string
	ProjectName     string
	Prefix          string
	SourceDir       string
	FileApplication string
	FileType        string
	Company         string
	StartDate       *time.Time
	FinishDate      *time.Time
	StatusDate      *time.Time
	TaskCount       int
	CreatedAt       time.Time
}

// NewSnapshot describes p as read from sourceDir. The caller assigns the ID.
func NewSnapshot(p *Project, sourceDir string, now time.Time) *Snapshot {
	return &Snapshot{
		ProjectName:     p.DisplayName(),
		Prefix:          p.Properties.Prefix,
		SourceDir:       sourceDir,
		FileApplication: p.Properties.FileApplication,
		FileType:        p.Properties.FileType,
		Company:         p.Properties.Company,
		StartDate:       copyTime(p.Properties.StartDate),
		FinishDate:      copyTime(p.Properties.FinishDate),
		StatusDate:      copyTime(p.Properties.StatusDate),
		TaskCount:       len(p.Tasks),
		CreatedAt:       now.UTC(),
	}
}
