package params

import "libwebdoc/internal/model"

// ParamSet is an insertion-ordered collection of parameter records keyed by
// path. Re-adding a key replaces the record but keeps its position.
type ParamSet struct {
	records []model.ParamRecord
	index   map[string]int
}

// NewParamSet creates an empty ParamSet
func NewParamSet() *ParamSet {
	return &ParamSet{index: make(map[string]int)}
}

// Add inserts or replaces a record and reports whether a record with the
// same key was already present.
func (s *ParamSet) Add(r model.ParamRecord) bool {
	if i, ok := s.index[r.Key]; ok {
		s.records[i] = r
		return true
	}
	s.index[r.Key] = len(s.records)
	s.records = append(s.records, r)
	return false
}

// Merge adds every record in order and returns the keys that were overwritten
func (s *ParamSet) Merge(records []model.ParamRecord) []string {
	var overwritten []string
	for _, r := range records {
		if s.Add(r) {
			overwritten = append(overwritten, r.Key)
		}
	}
	return overwritten
}

// Get returns the record stored under key
func (s *ParamSet) Get(key string) (model.ParamRecord, bool) {
	i, ok := s.index[key]
	if !ok {
		return model.ParamRecord{}, false
	}
	return s.records[i], true
}

// Len returns the number of distinct keys
func (s *ParamSet) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in insertion order
func (s *ParamSet) Records() []model.ParamRecord {
	out := make([]model.ParamRecord, len(s.records))
	copy(out, s.records)
	return out
}
