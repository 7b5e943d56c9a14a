package generator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ErrArtifactWrite marks failures to create or write an output file.
var ErrArtifactWrite = errors.New("artifact write failed")

// Artifact is one output file.
type Artifact struct {
	Name   string                 // File name relative to the output directory
	Render func(w io.Writer) error // Writes the file content
}

// WriteArtifact renders a into dir. Content goes to a temporary file that
// is renamed into place only after rendering succeeds, so a failed write
// never leaves a partial artifact behind.
func WriteArtifact(dir string, a Artifact) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, a.Name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", markWrite(err, "creating output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+a.Name+".*.tmp")
	if err != nil {
		return "", markWrite(err, "creating %s", path)
	}
	tmpPath := tmp.Name()

	// CreateTemp uses 0600.
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", markWrite(err, "creating %s", path)
	}

	renderErr := a.Render(tmp)
	closeErr := tmp.Close()

	if renderErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if renderErr != nil {
			return "", markWrite(renderErr, "writing %s", path)
		}
		return "", markWrite(closeErr, "closing %s", path)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", markWrite(err, "replacing %s", path)
	}

	return path, nil
}

func markWrite(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrArtifactWrite)
}
