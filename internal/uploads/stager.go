package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	// ErrTooLarge is returned when an upload exceeds the stager's size limit.
	ErrTooLarge = errors.New("upload too large")
	// ErrStaging marks a failure of the scratch directory, not of the upload.
	ErrStaging = errors.New("staging failed")
)

// Stager spools uploaded files to a scratch directory before they are read
// into the store.
type Stager struct {
	dir      string
	maxBytes int64
}

// Staged is a single spooled upload. It must be released by its owner.
type Staged struct {
	path string
	size int64
}

// NewStager creates the scratch directory if needed. maxBytes <= 0 disables
// the size limit.
func NewStager(dir string, maxBytes int64) (*Stager, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Stager{dir: dir, maxBytes: maxBytes}, nil
}

// Stage copies src into a new scratch file. On error nothing is left behind.
// Faults on the scratch file itself wrap ErrStaging; errors reading src are
// returned as is.
func (s *Stager) Stage(src io.Reader) (*Staged, error) {
	f, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create scratch file: %w", ErrStaging, err)
	}
	staged := &Staged{path: f.Name()}

	source := &sourceReader{r: src}
	var reader io.Reader = source
	if s.maxBytes > 0 {
		reader = io.LimitReader(source, s.maxBytes+1)
	}
	n, copyErr := io.Copy(f, reader)
	closeErr := f.Close()
	switch {
	case copyErr != nil && source.err != nil:
		staged.Release()
		return nil, fmt.Errorf("failed to read upload: %w", copyErr)
	case copyErr != nil:
		staged.Release()
		return nil, fmt.Errorf("%w: write scratch file: %w", ErrStaging, copyErr)
	case closeErr != nil:
		staged.Release()
		return nil, fmt.Errorf("%w: close scratch file: %w", ErrStaging, closeErr)
	case s.maxBytes > 0 && n > s.maxBytes:
		staged.Release()
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxBytes)
	}

	staged.size = n
	log.Debug("Staged upload", "path", staged.path, "bytes", n)
	return staged, nil
}

// sourceReader remembers the last read error so Stage can tell a broken
// request body from a broken scratch file.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

// Size is the number of bytes staged.
func (st *Staged) Size() int64 {
	return st.size
}

// ReadAll returns the staged bytes.
func (st *Staged) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged upload: %w", err)
	}
	return data, nil
}

// Release removes the scratch file. It is safe to call more than once and on
// a nil Staged.
func (st *Staged) Release() {
	if st == nil || st.path == "" {
		return
	}
	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error("Failed to remove staged upload", "error", err, "path", st.path)
	}
}
