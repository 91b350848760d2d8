package store

import (
	"context"
	"errors"
	"strings"
)

// Service keeps serialized projects by name.
type Service interface {
	// Load returns the saved data, or nothing if the name is unknown.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save stores data under name. Saving no data deletes the project.
	Save(ctx context.Context, name string, data []byte) error
	// List returns the saved names in order.
	List(ctx context.Context) ([]string, error)
}

var (
	// ErrTimeout is returned when an operation does not finish in time.
	ErrTimeout = errors.New("store operation timed out")
	// ErrInvalidName is returned for names that cannot be stored.
	ErrInvalidName = errors.New("invalid project name")
)

const maxNameLength = 128

// ValidName reports whether name can be used for a project.
func ValidName(name string) bool {
	return name != "" && len(name) <= maxNameLength && !strings.ContainsAny(name, "/\\?#")
}
