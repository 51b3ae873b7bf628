package domain

import (
	"bytes"
	"encoding/base64"

	"go.trai.ch/zerr"
)

// Fingerprint is a fixed-length digest of the state that made a target's
// last result valid: the target's own filesystem state plus the persisted
// fingerprints of its prerequisites. A zero-length Fingerprint means
// "never recorded".
type Fingerprint []byte

// IsZero reports whether the fingerprint is absent.
func (f Fingerprint) IsZero() bool {
	return len(f) == 0
}

// Equal reports whether two fingerprints match. Two absent fingerprints
// are not considered equal; an unrecorded target is never up to date.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if f.IsZero() || other.IsZero() {
		return false
	}
	return bytes.Equal(f, other)
}

// EncodeText renders the fingerprint as printable text for the on-disk
// store.
func (f Fingerprint) EncodeText() string {
	return base64.StdEncoding.EncodeToString(f)
}

// DecodeFingerprint parses the textual store encoding.
func DecodeFingerprint(s string) (Fingerprint, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, zerr.Wrap(err, "undecodable fingerprint")
	}
	return Fingerprint(raw), nil
}
