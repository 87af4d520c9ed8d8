package cache

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
)

// Fingerprinter derives a comparison key from a collection. Two collections with
// the same key are treated as unchanged by the background refresh.
type Fingerprinter[T any] func(data []T) (string, error)

// LengthFingerprint returns "<serialized length>-<count>".
//
// It is cheap but not injective: an edit that keeps the JSON length and item
// count unchanged (renaming "abc" to "xyz") produces the same key and goes unnoticed
// until the TTL expires.
func LengthFingerprint[T any](data []T) (string, error) {
	b, err := marshal(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", len(b), len(data)), nil
}

// ContentFingerprint returns an xxhash of the serialized collection and its count.
func ContentFingerprint[T any](data []T) (string, error) {
	b, err := marshal(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x-%d", xxhash.Sum64(b), len(data)), nil
}

// FingerprintFor returns the fingerprinter for mode. Unknown modes fall back to length.
func FingerprintFor[T any](mode domain.FingerprintMode) Fingerprinter[T] {
	if mode == domain.FingerprintContent {
		return ContentFingerprint[T]
	}
	return LengthFingerprint[T]
}

func marshal[T any](data []T) ([]byte, error) {
	if data == nil {
		data = []T{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFingerprintFailed.Error())
	}
	return b, nil
}
