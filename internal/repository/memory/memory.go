// Package memory provides map-backed repository implementations. They are
// interchangeable with the sqlite implementations and back the test suite and
// local development without a database file.
package memory

import "slices"

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
