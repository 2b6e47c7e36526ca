package blob

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a container or blob name is empty.
var ErrEmptyName = errors.New("container and blob name are required")

// FetchError reports a blob GET that completed with a non-2xx status.
type FetchError struct {
	Container  string
	Blob       string
	StatusCode int
	Status     string
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %s", e.Container, e.Blob, e.Status)
}
