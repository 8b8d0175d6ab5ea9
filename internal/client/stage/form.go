package stage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/stark-bootcamp.net/internal/client/validation"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

// Upload is a file picked for a stage. Open is only called once the form
// has passed validation.
type Upload struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// UploadFromBytes wraps in-memory content.
func UploadFromBytes(name string, data []byte) Upload {
	return Upload{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// UploadFromPath stats path now and opens it lazily.
func UploadFromPath(path string) (Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Upload{}, fmt.Errorf("%s is a directory", path)
	}
	return Upload{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Form is everything the contestant entered for one stage.
type Form struct {
	Fields map[string]string
	Files  []Upload
	Nodes  []domain.LogicNode
}

func (f Form) Field(name string) string {
	if f.Fields == nil {
		return ""
	}
	return f.Fields[name]
}

func (f Form) sizes() []validation.File {
	files := make([]validation.File, 0, len(f.Files))
	for _, u := range f.Files {
		files = append(files, validation.File{Name: u.Name, Size: u.Size})
	}
	return files
}

// Body is an encoded request ready to send.
type Body struct {
	ContentType string
	Data        []byte
}
