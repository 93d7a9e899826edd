package domain

import "time"

// Project groups a set of objectives and the users assigned to them.
//
// ObjectiveIDs is the denormalized list of child objective ids. It must always
// agree with the set of objectives whose ProjectID references this project;
// the service layer maintains it inside every mutating operation.
type Project struct {
	ID            string
	Name          string
	Description   string
	Completed     bool
	AssignedUsers []string
	ObjectiveIDs  []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProjectPatch is a partial update. Nil fields are left unchanged. Identity
// and the objective list are not representable here: the id is immutable and
// ObjectiveIDs is owned by the objective lifecycle, not by callers.
type ProjectPatch struct {
	Name          *string
	Description   *string
	Completed     *bool
	AssignedUsers *[]string
}
