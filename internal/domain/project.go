package domain

import (
	"time"
)

// ProjectProperties holds project-level header information.
type ProjectProperties struct {
	Name            string     `json:"name" yaml:"name"`
	Company         string     `json:"company,omitempty" yaml:"company,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	FinishDate      *time.Time `json:"finish_date,omitempty" yaml:"finish_date,omitempty"`
	StatusDate      *time.Time `json:"status_date,omitempty" yaml:"status_date,omitempty"`
	FileApplication string     `json:"file_application" yaml:"file_application"`
	FileType        string     `json:"file_type" yaml:"file_type"`
	Prefix          string     `json:"prefix" yaml:"prefix"`
}

// Project is a reconstructed schedule. Tasks live in an arena addressed by
// TaskID; each task refers to its parent by index, never by pointer.
type Project struct {
	Properties      ProjectProperties
	Calendars       []Calendar
	DefaultCalendar string
	Tasks           []Task
	Roots           []TaskID
	Resources       []Resource
	Relations       []Relation
	Assignments     []Assignment
}

// NewProject returns an empty project.
func NewProject() *Project {
	return &Project{}
}

// DisplayName returns the project name, falling back to the file prefix.
func (p *Project) DisplayName() string {
	return CoalesceStr(p.Properties.Name, p.Properties.Prefix, "(unnamed)")
}

// AddTask appends a new task under parent (NoTask for a top-level task) and
// returns its ID. Unknown parents are treated as NoTask.
func (p *Project) AddTask(parent TaskID) TaskID {
	id := TaskID(len(p.Tasks))
	if !p.valid(parent) {
		parent = NoTask
	}
	p.Tasks = append(p.Tasks, Task{ID: id, Parent: parent})
	if parent == NoTask {
		p.Roots = append(p.Roots, id)
	} else {
		p.Tasks[parent].Children = append(p.Tasks[parent].Children, id)
	}
	return id
}

// Task returns the task with the given ID, or nil when out of range.
func (p *Project) Task(id TaskID) *Task {
	if !p.valid(id) {
		return nil
	}
	return &p.Tasks[id]
}

// Depth returns the number of ancestors of id (0 for a root task).
func (p *Project) Depth(id TaskID) int {
	depth := 0
	for t := p.Task(id); t != nil && t.Parent != NoTask; t = p.Task(t.Parent) {
		depth++
	}
	return depth
}

// Walk visits every task depth-first in child order, parents before
// children. Returning false from fn skips the task's subtree.
func (p *Project) Walk(fn func(t *Task, depth int) bool) {
	var visit func(id TaskID, depth int)
	visit = func(id TaskID, depth int) {
		t := &p.Tasks[id]
		if !fn(t, depth) {
			return
		}
		for _, c := range t.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range p.Roots {
		visit(r, 0)
	}
}

// AddResource appends a resource and assigns it the next unique ID.
func (p *Project) AddResource(r Resource) *Resource {
	r.UniqueID = len(p.Resources) + 1
	p.Resources = append(p.Resources, r)
	return &p.Resources[len(p.Resources)-1]
}

// PredecessorsOf returns the relations whose successor is id.
func (p *Project) PredecessorsOf(id TaskID) []Relation {
	var out []Relation
	for _, r := range p.Relations {
		if r.Successor == id {
			out = append(out, r)
		}
	}
	return out
}

// AssignmentsOf returns the assignments attached to id.
func (p *Project) AssignmentsOf(id TaskID) []Assignment {
	var out []Assignment
	for _, a := range p.Assignments {
		if a.Task == id {
			out = append(out, a)
		}
	}
	return out
}

func (p *Project) valid(id TaskID) bool {
	return id >= 0 && int(id) < len(p.Tasks)
}
