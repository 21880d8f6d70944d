package roster

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roster-manager/backend/internal/models"
)

// SearchType selects one of the search modes.
type SearchType string

const (
	SearchByName   SearchType = "name"
	SearchByState  SearchType = "state"
	SearchBySalary SearchType = "salary"
)

// SalaryRange bounds a salary search. A nil bound is open on that side.
type SalaryRange struct {
	Min *float64
	Max *float64
}

// Contains reports whether v falls inside the inclusive range.
func (r SalaryRange) Contains(v float64) bool {
	if r.Min != nil && *r.Min > v {
		return false
	}
	if r.Max != nil && *r.Max < v {
		return false
	}
	return true
}

// ByName looks up a single person by exact name.
func (s *Store) ByName(name string) []models.SearchResult {
	name = strings.TrimSpace(name)
	p, ok := s.Get(name)
	if !ok {
		return []models.SearchResult{}
	}
	return []models.SearchResult{{Name: name, Person: p}}
}

// ByState returns every person whose State equals state, ignoring case.
func (s *Store) ByState(state string) []models.SearchResult {
	upper := cases.Upper(language.Und)
	want := upper.String(strings.TrimSpace(state))

	results := []models.SearchResult{}
	s.ForEach(func(name string, p models.Person) bool {
		if upper.String(p.State) == want {
			results = append(results, models.SearchResult{Name: name, Person: p})
		}
		return true
	})
	return results
}

// BySalary returns every person whose Salary parses as a number inside r.
// People with a blank or non-numeric salary never match.
func (s *Store) BySalary(r SalaryRange) []models.SearchResult {
	results := []models.SearchResult{}
	s.ForEach(func(name string, p models.Person) bool {
		salary, ok := ParseSalary(p.Salary)
		if ok && r.Contains(salary) {
			results = append(results, models.SearchResult{Name: name, Person: p})
		}
		return true
	})
	return results
}

// ParseSalary interprets a stored salary. The null marker, NaN and anything
// strconv cannot read are reported as not ok.
func ParseSalary(v string) (float64, bool) {
	if models.IsBlank(v) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseBound reads an optional salary bound from a form value. An empty
// value yields a nil bound.
func ParseBound(v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
