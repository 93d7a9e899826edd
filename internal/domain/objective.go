package domain

import "time"

// Objective is a single unit of work belonging to exactly one project.
type Objective struct {
	ID            string
	Title         string
	Description   string
	ProjectID     string
	Completed     bool
	AssignedUsers []string
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ObjectivePatch is a partial update. Nil fields are left unchanged.
// ProjectID is deliberately absent: objectives cannot be re-parented.
type ObjectivePatch struct {
	Title         *string
	Description   *string
	Completed     *bool
	AssignedUsers *[]string
	DueDate       *time.Time
}
