package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roster-manager/backend/internal/models"
)

func seedSalaries(s *testServer) {
	s.seed(
		models.Entry{Name: "Alice", Person: models.Person{State: "NY", Salary: "50000"}},
		models.Entry{Name: "Bob", Person: models.Person{State: "NYC", Salary: "abc"}},
		models.Entry{Name: "Carol", Person: models.Person{State: "ny", Salary: "70000"}},
		models.Entry{Name: "Dan", Person: models.Person{State: "CA", Salary: "nan"}},
	)
}

// resultsSection returns the rendered search results block, or "" when none was rendered
func resultsSection(body string) string {
	start := strings.Index(body, `<div class="results">`)
	if start < 0 {
		return ""
	}
	end := strings.Index(body[start:], `</div>`)
	return body[start : start+end]
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		form    map[string]string
		want    []string
		notWant []string
		count   string
	}{
		{
			name:    "by name",
			form:    map[string]string{"search_type": "name", "search_name": "  Alice "},
			want:    []string{"Alice"},
			notWant: []string{"Carol", "Bob"},
			count:   "Results (1)",
		},
		{
			name:  "by missing name",
			form:  map[string]string{"search_type": "name", "search_name": "alice"},
			count: "Results (0)",
		},
		{
			name:    "by state ignores case but not length",
			form:    map[string]string{"search_type": "state", "search_state": "ny"},
			want:    []string{"Alice", "Carol"},
			notWant: []string{"Bob"},
			count:   "Results (2)",
		},
		{
			name:    "salary range",
			form:    map[string]string{"search_type": "salary", "min_salary": "40000", "max_salary": "60000"},
			want:    []string{"Alice"},
			notWant: []string{"Bob", "Carol", "Dan"},
			count:   "Results (1)",
		},
		{
			name:    "salary min only",
			form:    map[string]string{"search_type": "salary", "min_salary": "60000"},
			want:    []string{"Carol"},
			notWant: []string{"Alice"},
			count:   "Results (1)",
		},
		{
			name:  "salary unbounded",
			form:  map[string]string{"search_type": "salary"},
			want:  []string{"Alice", "Carol"},
			count: "Results (2)",
		},
		{
			name:  "unknown type",
			form:  map[string]string{"search_type": "grade"},
			count: "Results (0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			seedSalaries(s)

			rec := s.postForm("/search", tt.form)
			assert.Equal(t, 200, rec.Code)

			results := resultsSection(rec.Body.String())
			assert.Contains(t, results, tt.count)
			for _, name := range tt.want {
				assert.Contains(t, results, "<td>"+name+"</td>")
			}
			for _, name := range tt.notWant {
				assert.NotContains(t, results, "<td>"+name+"</td>")
			}
		})
	}
}

func TestSearch_InvalidSalaryBound(t *testing.T) {
	s := newTestServer(t)
	seedSalaries(s)

	rec := s.postForm("/search", map[string]string{"search_type": "salary", "min_salary": "lots"})
	assert.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Invalid salary value: lots")
	assert.Contains(t, resultsSection(body), "Results (0)")
	assert.Empty(t, rec.Result().Cookies(), "notice shown immediately, not carried over")
}
