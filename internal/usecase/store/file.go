// Package store persists use cases as one JSON file per identifier.
package store

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"usecase-assistant/internal/usecase/metrics"
	"usecase-assistant/internal/usecase/models"
	"usecase-assistant/internal/usecase/serializer"
	dErrors "usecase-assistant/pkg/domain-errors"
)

const (
	fileExt  = ".json"
	dirPerm  = 0o755
	filePerm = 0o644
)

// Codec converts between domain values and record bytes.
// *serializer.Serializer is the production implementation.
type Codec interface {
	Serialize(uc *models.UseCase) ([]byte, error)
	Deserialize(data []byte) (*models.UseCase, error)
}

// FileStore maps an identifier to <dir>/<id>.json. It owns dir exclusively.
// Operations are synchronous; there is no locking between processes and the
// last completed Save for an identifier wins.
type FileStore struct {
	dir     string
	codec   Codec
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*FileStore)

func WithCodec(c Codec) Option {
	return func(s *FileStore) {
		s.codec = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *FileStore) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *FileStore) {
		s.metrics = m
	}
}

// DefaultDir is the per-user storage location, ~/.usecase-assistant/use-cases.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".usecase-assistant", "use-cases"), nil
}

// New opens a file store rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "storage directory is required")
	}
	s := &FileStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	if s.codec == nil {
		codec, err := serializer.New()
		if err != nil {
			return nil, err
		}
		s.codec = codec
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, &Error{Op: OpInit, Path: dir, Err: err}
	}
	return s, nil
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes uc atomically: the record is encoded, written to a temporary
// file in the storage directory, synced, and renamed over the final name. A
// failure at any point leaves the previous record untouched and removes the
// temporary file.
func (s *FileStore) Save(ctx context.Context, uc *models.UseCase) (err error) {
	if uc == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "use case cannot be nil")
	}
	start := time.Now()
	defer func() { s.metrics.ObserveStore(metrics.OpSave, start, err) }()

	path, err := s.pathFor(uc.ID())
	if err != nil {
		return err
	}
	data, err := s.codec.Serialize(uc)
	if err != nil {
		return &Error{Op: OpSave, ID: uc.ID(), Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &Error{Op: OpSave, ID: uc.ID(), Path: path, Err: err}
	}
	s.logger.DebugContext(ctx, "use case saved", "id", uc.ID(), "path", path, "bytes", len(data))
	return nil
}

// Load reads and decodes the record for id. Serializer failures are returned
// wrapped, so serializer.KindOf and errors.Is still see the cause.
func (s *FileStore) Load(ctx context.Context, id string) (uc *models.UseCase, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore(metrics.OpLoad, start, err) }()

	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, OpLoad, id, path)
}

// LoadAll decodes every record in the directory, in file name order. The
// first unreadable or undecodable record aborts the call; no partial list is
// returned.
func (s *FileStore) LoadAll(ctx context.Context) (ucs []*models.UseCase, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore(metrics.OpLoadAll, start, err) }()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &Error{Op: OpLoadAll, Path: s.dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), fileExt) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	ucs = make([]*models.UseCase, 0, len(names))
	for _, name := range names {
		id := strings.TrimSuffix(name, fileExt)
		uc, err := s.read(ctx, OpLoadAll, id, filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		ucs = append(ucs, uc)
	}
	return ucs, nil
}

// Delete removes the record for id. Anything at the record path that is not a
// regular file is reported as ErrNotFound and left in place, as Exists does.
func (s *FileStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore(metrics.OpDelete, start, err) }()

	path, err := s.pathFor(id)
	if err != nil {
		return err
	}
	info, err := os.Lstat(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &Error{Op: OpDelete, ID: id, Path: path, Err: err}
	}
	if err != nil || !info.Mode().IsRegular() {
		return &Error{Op: OpDelete, ID: id, Path: path, Err: ErrNotFound}
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Op: OpDelete, ID: id, Path: path, Err: ErrNotFound}
		}
		return &Error{Op: OpDelete, ID: id, Path: path, Err: err}
	}
	s.logger.DebugContext(ctx, "use case deleted", "id", id, "path", path)
	return nil
}

// Exists reports whether a record file exists for id. Malformed identifiers
// report false.
func (s *FileStore) Exists(_ context.Context, id string) bool {
	path, err := s.pathFor(id)
	if err != nil {
		return false
	}
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

func (s *FileStore) read(ctx context.Context, op Op, id, path string) (*models.UseCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Op: op, ID: id, Path: path, Err: ErrNotFound}
		}
		return nil, &Error{Op: op, ID: id, Path: path, Err: err}
	}
	uc, err := s.codec.Deserialize(data)
	if err != nil {
		s.logger.WarnContext(ctx, "use case record unreadable", "id", id, "path", path, "error", err)
		return nil, &Error{Op: op, ID: id, Path: path, Err: err}
	}
	return uc, nil
}

// pathFor maps id to its record file. Identifiers must stay inside the
// storage directory.
func (s *FileStore) pathFor(id string) (string, error) {
	if strings.TrimSpace(id) == "" ||
		id == "." || id == ".." ||
		strings.ContainsAny(id, `/\`+"\x00") ||
		filepath.Base(id) != id {
		return "", dErrors.Wrap(ErrInvalidID, dErrors.CodeInvalidInput, "use case id "+quote(id)+" cannot be used as a file name")
	}
	return filepath.Join(s.dir, id+fileExt), nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, "\x00", `\x00`) + `"`
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
