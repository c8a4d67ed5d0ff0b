// Package store persists label units next to the text they annotate.
//
// A labels file records a BLAKE3 fingerprint of the text, so labels are
// never applied to a text whose characters have moved since they were saved.
package store

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/dbh/md-annotate/internal/annotate"
)

// ErrTextChanged indicates labels saved for a different text.
var ErrTextChanged = errors.New("text changed since labels were saved")

// File is the on-disk form of a label list.
type File struct {
	TextHash string               `yaml:"text_hash"`
	Labels   []annotate.LabelUnit `yaml:"labels"`
}

// Fingerprint returns the hex BLAKE3 digest of text.
func Fingerprint(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Decode parses a labels document for text. Units are validated and their
// text caches recomputed. An empty document holds no labels.
func Decode(data []byte, text string) ([]annotate.LabelUnit, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	if f.TextHash != "" && f.TextHash != Fingerprint(text) {
		return nil, ErrTextChanged
	}
	if f.Labels == nil {
		return []annotate.LabelUnit{}, nil
	}
	return annotate.Refresh(text, f.Labels)
}

// Encode renders units as a labels document bound to text.
func Encode(units []annotate.LabelUnit, text string) (string, error) {
	if units == nil {
		units = []annotate.LabelUnit{}
	}
	data, err := yaml.Marshal(File{TextHash: Fingerprint(text), Labels: units})
	if err != nil {
		return "", fmt.Errorf("encode labels: %w", err)
	}
	return string(data), nil
}

// Load reads the labels file at path. A missing file holds no labels.
func Load(path, text string) ([]annotate.LabelUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []annotate.LabelUnit{}, nil
		}
		return nil, err
	}
	units, err := Decode(data, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return units, nil
}
