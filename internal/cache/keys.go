package cache

import "fmt"

const (
	CatalogPrefix = "catalog:"
	StudentPrefix = "student:"
)

type keyBuilder struct{}

// CatalogSnapshotKey holds the whole reference catalog.
func (keyBuilder) CatalogSnapshotKey() string {
	return CatalogPrefix + "snapshot"
}

// StudentProfileKey holds one student's profile.
func (keyBuilder) StudentProfileKey(studentID string) string {
	return fmt.Sprintf("%s%s:profile", StudentPrefix, studentID)
}

var Key keyBuilder
