// Package proficiency provides the fixed/available/choice proficiency set
// used for skills, tools, and languages on backgrounds and feats.
//
// Stored documents encode the set three ways: null, a bare array of always
// granted proficiencies, or an object with fixed/available/choice keys. One
// legacy object form is ambiguous: when choice.from_selected is set and
// available is empty, the stored fixed array is actually the available pool.
// Decoding normalizes all of these into the unambiguous in-memory shape; the
// ambiguity is never propagated forward.
package proficiency

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// Choice describes how many entries the player picks and whether the pool is
// restricted to the curated available list.
type Choice struct {
	Count int `json:"count"`
	// FromSelected is derived from the available list; it is stored for the
	// benefit of older readers but is never set independently.
	FromSelected bool `json:"from_selected"`
}

// Set is the normalized proficiency set.
//
// Fixed holds proficiencies always granted. Available, when non-empty,
// restricts the pool the player chooses from; when empty the player chooses
// from the full global catalog.
type Set struct {
	Fixed     []string `json:"fixed"`
	Available []string `json:"available"`
	Choice    *Choice  `json:"choice,omitempty"`
}

// New returns an empty normalized set.
func New() *Set {
	return &Set{Fixed: []string{}, Available: []string{}}
}

// Normalize decodes any stored encoding of a proficiency set into the
// normalized shape. A nil or JSON-null input yields an empty set.
func Normalize(data []byte) (*Set, error) {
	s := New()
	if len(data) == 0 {
		return s, nil
	}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

// UnmarshalJSON implements json.Unmarshaler, applying the legacy
// normalization rules described in the package comment.
func (s *Set) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = *New()
		return nil
	}

	// Bare array: everything is a fixed grant.
	if trimmed[0] == '[' {
		var fixed []string
		if err := json.Unmarshal(trimmed, &fixed); err != nil {
			return errors.Wrap(err, "failed to decode proficiency list")
		}
		*s = Set{Fixed: dedupe(fixed), Available: []string{}}
		return nil
	}

	var doc struct {
		Fixed     []string `json:"fixed"`
		Available []string `json:"available"`
		Choice    *Choice  `json:"choice"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return errors.Wrap(err, "failed to decode proficiency set")
	}

	fixed := dedupe(doc.Fixed)
	available := dedupe(doc.Available)

	// Legacy encoding: when from_selected is set but no available list was
	// stored, the fixed array is actually the choice pool.
	if doc.Choice != nil && doc.Choice.FromSelected && len(available) == 0 && len(fixed) > 0 {
		available = fixed
		fixed = []string{}
	}

	available = subtract(available, fixed)

	// FromSelected is derived from the final pool. A stale stored flag must
	// not survive normalization, or serializing and re-loading would trip
	// the legacy branch and turn fixed grants into the choice pool.
	if doc.Choice != nil {
		doc.Choice.FromSelected = len(available) > 0
	}

	*s = Set{
		Fixed:     fixed,
		Available: available,
		Choice:    doc.Choice,
	}
	return nil
}

// SetFixed replaces the fixed grants. Entries are de-duplicated and removed
// from the available pool so the two never overlap.
func (s *Set) SetFixed(values []string) {
	s.Fixed = dedupe(values)
	s.Available = subtract(s.Available, s.Fixed)
}

// SetAvailable replaces the choosable pool. Entries already fixed are
// dropped, and the derived from_selected flag is recomputed.
func (s *Set) SetAvailable(values []string) {
	s.Available = subtract(dedupe(values), s.Fixed)
	if s.Choice != nil {
		s.Choice.FromSelected = len(s.Available) > 0
	}
}

// SetChoiceCount sets how many entries the player picks, enabling the choice
// if it was off. Counts below one are clamped to one.
func (s *Set) SetChoiceCount(count int) {
	if count < 1 {
		count = 1
	}
	if s.Choice == nil {
		s.Choice = &Choice{}
	}
	s.Choice.Count = count
	s.Choice.FromSelected = len(s.Available) > 0
}

// ToggleChoice turns the player choice on or off. Turning it off discards
// the available pool, which only has meaning while a choice exists.
func (s *Set) ToggleChoice(enabled bool) {
	if enabled {
		if s.Choice == nil {
			s.Choice = &Choice{Count: 1, FromSelected: len(s.Available) > 0}
		}
		return
	}
	s.Choice = nil
	s.Available = []string{}
}

// Collapsed returns the value to store: nil when the set grants nothing and
// offers no choice, so storage distinguishes "no proficiencies" from an
// empty-but-present set.
func (s *Set) Collapsed() *Set {
	if s == nil {
		return nil
	}
	if len(s.Fixed) == 0 && len(s.Available) == 0 && s.Choice == nil {
		return nil
	}
	return s
}

func dedupe(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func subtract(values, removed []string) []string {
	drop := make(map[string]struct{}, len(removed))
	for _, v := range removed {
		drop[v] = struct{}{}
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := drop[v]; ok {
			continue
		}
		result = append(result, v)
	}
	return result
}
