// internal/presets/presets.go
// Package presets keeps the user's named filter presets, sorted by name and
// persisted as a single JSON blob in a key-value store.
package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mwiater/primeview/internal/kvstore"
	"github.com/mwiater/primeview/internal/logging"
)

// StorageKey is the store key holding the serialized preset list.
const StorageKey = "ResultFilterPresets"

// ErrInvalidName is returned when adding a preset with a blank name.
var ErrInvalidName = errors.New("presets: name must not be blank")

// ErrUnavailable is returned by mutations while the stored presets cannot be read.
var ErrUnavailable = errors.New("presets: stored presets could not be read")

// Preset captures the five encoded filter fields under a user-chosen name.
type Preset struct {
	Name               string `json:"name" yaml:"name"`
	AlgorithmText      string `json:"algorithmText" yaml:"algorithmText"`
	BitsText           string `json:"bitsText" yaml:"bitsText"`
	FaithfulText       string `json:"faithfulText" yaml:"faithfulText"`
	ImplementationText string `json:"implementationText" yaml:"implementationText"`
	ParallelismText    string `json:"parallelismText" yaml:"parallelismText"`
}

// Store is the ordered preset collection. It is not safe for concurrent use.
type Store struct {
	kv          kvstore.Store
	presets     []Preset
	unavailable bool
}

// New returns an empty Store backed by kv. Call Load to read persisted presets.
func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory collection with the persisted one. A blob that
// cannot be decoded is removed from the store and an empty collection is used
// instead. A failed read leaves the blob alone and marks the store unavailable
// until a later Load succeeds.
func (s *Store) Load() []Preset {
	s.presets = nil
	s.unavailable = false
	if s.kv == nil {
		return nil
	}

	ok, err := s.kv.Contains(StorageKey)
	if err != nil {
		s.readFailed(err)
		return nil
	}
	if !ok {
		return nil
	}
	raw, err := s.kv.Get(StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.readFailed(err)
		return nil
	}

	decoded, err := decode(raw)
	if err != nil {
		logging.LogEvent("discarding stored filter presets: %v", err)
		if rmErr := s.kv.Remove(StorageKey); rmErr != nil {
			logging.LogEvent("failed to remove stored filter presets: %v", rmErr)
		}
		return nil
	}
	s.presets = decoded
	return s.List()
}

func (s *Store) readFailed(err error) {
	logging.LogEvent("reading stored filter presets: %v", err)
	s.unavailable = true
}

// ensureLoaded retries a failed Load. Mutations are refused until it succeeds.
func (s *Store) ensureLoaded() error {
	if !s.unavailable {
		return nil
	}
	s.Load()
	if s.unavailable {
		return ErrUnavailable
	}
	return nil
}

// List returns a copy of the presets in stored order.
func (s *Store) List() []Preset {
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Len returns the number of presets.
func (s *Store) Len() int { return len(s.presets) }

// At returns the preset at index without changing the store.
func (s *Store) At(index int) (Preset, bool) {
	if index < 0 || index >= len(s.presets) {
		return Preset{}, false
	}
	return s.presets[index], true
}

// Find returns the index of the preset whose name equals name, ignoring case.
// Names match when they compare equal under the store's ordering.
func (s *Store) Find(name string) (int, bool) {
	for i, p := range s.presets {
		if compareNames(p.Name, name) == 0 {
			return i, true
		}
	}
	return -1, false
}

// Closest returns the stored name nearest to name by edit distance.
func (s *Store) Closest(name string) (string, bool) {
	best, bestDistance := "", -1
	for _, p := range s.presets {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(p.Name))
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = p.Name, d
		}
	}
	return best, bestDistance >= 0
}

// Add inserts p at its sorted position, replacing a preset with the same
// name (ignoring case), and persists the collection. It returns the index p
// now occupies.
func (s *Store) Add(p Preset) (int, error) {
	if strings.TrimSpace(p.Name) == "" {
		return -1, ErrInvalidName
	}
	if err := s.ensureLoaded(); err != nil {
		return -1, err
	}

	i := 0
	for i < len(s.presets) && compareNames(p.Name, s.presets[i].Name) > 0 {
		i++
	}
	if i < len(s.presets) && compareNames(p.Name, s.presets[i].Name) == 0 {
		s.presets = append(s.presets[:i], s.presets[i+1:]...)
	}
	s.presets = append(s.presets, Preset{})
	copy(s.presets[i+1:], s.presets[i:])
	s.presets[i] = p

	return i, s.save()
}

// RemoveAt deletes the preset at index and persists the collection. An index
// out of range is ignored.
func (s *Store) RemoveAt(index int) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.presets) {
		logging.LogDebug("ignoring preset removal at stale index %d (have %d)", index, len(s.presets))
		return nil
	}
	s.presets = append(s.presets[:index], s.presets[index+1:]...)
	return s.save()
}

func (s *Store) save() error {
	if s.kv == nil {
		return nil
	}
	raw, err := json.Marshal(s.presets)
	if err != nil {
		return fmt.Errorf("presets: encode: %w", err)
	}
	if err := s.kv.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("presets: persist: %w", err)
	}
	return nil
}

// compareNames orders names ordinally after upper-casing both.
func compareNames(a, b string) int {
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}
