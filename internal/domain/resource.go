package domain

// Resource is a labour or material resource, identified by its code.
type Resource struct {
	UniqueID int
	Code     string
	Name     string
}

// Relation links a predecessor task to a successor task.
type Relation struct {
	Predecessor TaskID
	Successor   TaskID
	Type        RelationType
	Lag         Duration
}

// Assignment attaches a resource, by code, to a task.
type Assignment struct {
	Task         TaskID
	ResourceCode string
}
