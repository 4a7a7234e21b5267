package dedup

import (
	"encoding/json"
	"sort"
)

// Set is a string membership set that marshals to a flat JSON array,
// matching the on-disk format of the state files.
type Set map[string]struct{}

// NewSet builds a set from the given values
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value into the set
func (s Set) Add(value string) {
	s[value] = struct{}{}
}

// Contains reports whether the value is in the set
func (s Set) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of entries
func (s Set) Len() int {
	return len(s)
}

// Values returns the entries sorted, so serialized state is stable
func (s Set) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// MarshalJSON encodes the set as a JSON array of strings
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes a JSON array of strings into the set
func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
