// Package cache implements the on-disk fingerprint store.
package cache

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvCacheDir overrides the cache directory location when set.
const EnvCacheDir = "PMAKE_CACHE_DIR"

// DefaultDirName is the cache directory created under the working
// directory when no override is given.
const DefaultDirName = ".pmake_caches"

const recipesDirName = "recipes"

var _ ports.FingerprintStore = (*Store)(nil)

// Store persists one fingerprint file per target name under
// <dir>/recipes/. Target names are encoded reversibly into
// filesystem-safe filenames; payloads are printable text.
//
// Concurrent invocations against the same directory are not synchronized.
type Store struct {
	dir string
}

// NewStore locates the cache directory for the given working directory,
// honoring the EnvCacheDir override. A collision with an existing
// non-directory entry is fatal: there is no safe cache location. The
// directory itself is created on the first Save, so commands that never
// persist anything leave a fresh working tree untouched.
func NewStore(cwd string) (*Store, error) {
	dir := os.Getenv(EnvCacheDir)
	if dir == "" {
		dir = filepath.Join(cwd, DefaultDirName)
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return nil, zerr.With(domain.ErrCacheCollision, "path", dir)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, zerr.With(zerr.Wrap(err, "failed to stat cache directory"), "path", dir)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the persisted fingerprint for name. A missing or
// undecodable entry reads as absent; an entry that is a directory is
// fatal since the cache layout is broken beyond local recovery.
func (s *Store) Load(name string) (domain.Fingerprint, error) {
	path := s.entryPath(name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat cache entry"), "target", name)
	}
	if info.IsDir() {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrCacheCollision, "cache entry is a directory, remove '"+DefaultDirName+"' to recover"),
			"target", name,
		)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the encoded target name
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache entry"), "target", name)
	}

	fp, err := domain.DecodeFingerprint(strings.TrimSpace(string(data)))
	if err != nil {
		// Corrupt entry: treat as never recorded, forcing a rebuild.
		return nil, nil
	}
	return fp, nil
}

// Save writes the fingerprint for name, replacing any previous entry.
func (s *Store) Save(name string, fp domain.Fingerprint) error {
	if err := os.MkdirAll(filepath.Join(s.dir, recipesDirName), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create recipes cache directory")
	}
	if err := os.WriteFile(s.entryPath(name), []byte(fp.EncodeText()), 0o644); err != nil { //nolint:gosec // cache payload is not sensitive
		return zerr.With(zerr.Wrap(err, "failed to write cache entry"), "target", name)
	}
	return nil
}

// Clean removes the whole cache directory.
func (s *Store) Clean() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "path", s.dir)
	}
	return nil
}

func (s *Store) entryPath(name string) string {
	return filepath.Join(s.dir, recipesDirName, EncodeName(name))
}

// EncodeName maps a target name to a filesystem-safe filename. The
// encoding is reversible via DecodeName.
func EncodeName(name string) string {
	return base64.URLEncoding.EncodeToString([]byte(name))
}

// DecodeName reverses EncodeName.
func DecodeName(encoded string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", zerr.Wrap(err, "undecodable cache entry name")
	}
	return string(raw), nil
}
