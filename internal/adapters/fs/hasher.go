// Package fs computes target fingerprints from live filesystem state.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/thautwarm/pmakefile/internal/core/domain"
	"github.com/thautwarm/pmakefile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Markers separating the structural cases bound into a fingerprint, so
// that e.g. "path exists but is empty" and "path missing" never collide.
var (
	markerPath   = []byte("p")
	markerPhony  = []byte("f")
	markerExists = []byte{1}
	markerAbsent = []byte{0}
	sep          = []byte{0}
)

// Hasher derives fingerprints with xxhash. Prerequisite fingerprints are
// read from the store, which holds whatever the just-finished resolution
// of each prerequisite persisted.
type Hasher struct {
	store ports.FingerprintStore
	root  string
}

// NewHasher creates a Hasher resolving target paths relative to root.
func NewHasher(store ports.FingerprintStore, root string) *Hasher {
	return &Hasher{store: store, root: root}
}

// Fingerprint computes the current fingerprint per the rebuild-decision
// contract: a non-phony target binds its path's existence and regular-file
// content; a phony target binds nothing of its own. Both bind every
// prerequisite's persisted fingerprint, in sorted order so that the
// declared execution order does not affect the digest.
func (h *Hasher) Fingerprint(name string, deps []string, phony bool) (domain.Fingerprint, error) {
	digest := xxhash.New()

	if phony {
		_, _ = digest.Write(markerPhony)
	} else {
		_, _ = digest.Write(markerPath)
		if err := h.hashPathState(digest, filepath.Join(h.root, name)); err != nil {
			return nil, err
		}
	}
	_, _ = digest.Write(sep)

	sorted := make([]string, len(deps))
	copy(sorted, deps)
	sort.Strings(sorted)

	for _, dep := range sorted {
		fp, err := h.store.Load(dep)
		if err != nil {
			return nil, err
		}
		_, _ = digest.Write(fp)
		_, _ = digest.Write(sep)
	}

	return domain.Fingerprint(digest.Sum(nil)), nil
}

// hashPathState binds whether the path exists and, for a regular file,
// its content. Directories contribute existence only: their contents are
// summarized by the prerequisites that produce them.
func (h *Hasher) hashPathState(digest *xxhash.Digest, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			_, _ = digest.Write(markerAbsent)
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to stat target path"), "path", path)
	}

	_, _ = digest.Write(markerExists)
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path) //nolint:gosec // target paths come from the registry
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open target file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	if _, err := io.Copy(digest, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash target content"), "path", path)
	}
	return nil
}
