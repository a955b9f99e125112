package domain

import "fmt"

// Resource selects which upstream catalog a proxy call targets.
type Resource string

const (
	ResourceFilm  Resource = "film"
	ResourceActor Resource = "actor"
)

// ParseResource validates a resource kind.
func ParseResource(s string) (Resource, error) {
	switch r := Resource(s); r {
	case ResourceFilm, ResourceActor:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown resource %q", ErrInvalidInput, s)
	}
}
