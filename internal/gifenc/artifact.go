package gifenc

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

// Artifact is an encoded animation held in a temporary file, detached
// from any final destination. Callers either persist it with SaveTo or
// consume it directly and release it with Close.
type Artifact struct {
	id     string
	file   *os.File
	size   int64
	closed bool
}

func newArtifact() (*Artifact, error) {
	id := uuid.NewString()
	f, err := os.CreateTemp("", "pgn2gif-"+id+"-*.gif")
	if err != nil {
		return nil, giferr.Wrap(giferr.KindIO, "create temp artifact", err)
	}
	return &Artifact{id: id, file: f}, nil
}

// finalize records the encoded size and rewinds for readers.
func (a *Artifact) finalize() error {
	info, err := a.file.Stat()
	if err != nil {
		return giferr.Wrap(giferr.KindIO, "stat temp artifact", err)
	}
	a.size = info.Size()
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return giferr.Wrap(giferr.KindIO, "rewind temp artifact", err)
	}
	return nil
}

func (a *Artifact) ID() string { return a.id }

// Size is the encoded animation size in bytes.
func (a *Artifact) Size() int64 { return a.size }

// WriteTo copies the full artifact contents to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	if a.closed {
		return 0, giferr.New(giferr.KindIO, "artifact already released")
	}
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return 0, giferr.Wrap(giferr.KindIO, "rewind temp artifact", err)
	}
	n, err := io.Copy(w, a.file)
	if err != nil {
		return n, giferr.Wrap(giferr.KindIO, "copy artifact", err)
	}
	return n, nil
}

// Bytes reads the whole artifact into memory.
func (a *Artifact) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveTo persists the artifact at path, creating parent directories as
// needed, and releases the temporary resource whether or not the write
// succeeds.
func (a *Artifact) SaveTo(path string) (err error) {
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return giferr.Wrap(giferr.KindIO, "create output directory", mkErr)
		}
	}
	dst, createErr := os.Create(path)
	if createErr != nil {
		return giferr.Wrap(giferr.KindIO, "create output file", createErr)
	}
	if _, copyErr := a.WriteTo(dst); copyErr != nil {
		_ = dst.Close()
		return copyErr
	}
	if closeErr := dst.Close(); closeErr != nil {
		return giferr.Wrap(giferr.KindIO, "close output file", closeErr)
	}
	return nil
}

// Close releases the temporary file. Idempotent.
func (a *Artifact) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	name := a.file.Name()
	closeErr := a.file.Close()
	removeErr := os.Remove(name)
	if closeErr != nil {
		return giferr.Wrap(giferr.KindIO, "close temp artifact", closeErr)
	}
	if removeErr != nil {
		return giferr.Wrap(giferr.KindIO, "remove temp artifact", removeErr)
	}
	return nil
}
