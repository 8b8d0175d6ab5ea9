package secondary

import (
	"context"
	"io"
)

// Object is a file received from a contestant.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

type FileStore interface {
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, obj Object) (string, error)
}
