package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roster-manager/backend/internal/models"
)

func bound(v float64) *float64 { return &v }

func TestStore_ByName(t *testing.T) {
	s := newTestStore(t)

	results := s.ByName("  Alice ")
	require.Len(t, results, 1)
	assert.Equal(t, "Alice", results[0].Name)
	assert.Equal(t, "NY", results[0].Person.State)

	assert.Empty(t, s.ByName("alice"))
	assert.Empty(t, s.ByName(""))
}

func TestStore_ByState(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name  string
		state string
		want  []string
	}{
		{name: "lower case matches", state: "ny", want: []string{"Alice"}},
		{name: "surrounding space ignored", state: " tx ", want: []string{"Bob"}},
		{name: "exact match only", state: "NYC", want: []string{"Carol"}},
		{name: "no match", state: "CA", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(s.ByState(tt.state)))
		})
	}
}

func TestStore_ByStateFullCaseMapping(t *testing.T) {
	s := NewStore()
	s.Set("Hans", models.Person{State: "STRASSE"})

	assert.Equal(t, []string{"Hans"}, names(s.ByState("straße")))
}

func TestStore_BySalary(t *testing.T) {
	s := newTestStore(t)
	s.Set("Dan", models.Person{Salary: models.NullMarker})
	s.Set("Eve", models.Person{Salary: ""})
	s.Set("Fay", models.Person{Salary: " 40000 "})
	s.Set("Gus", models.Person{Salary: "NaN"})

	tests := []struct {
		name string
		rng  SalaryRange
		want []string
	}{
		{
			name: "both bounds",
			rng:  SalaryRange{Min: bound(40000), Max: bound(60000)},
			want: []string{"Alice", "Fay"},
		},
		{
			name: "min only",
			rng:  SalaryRange{Min: bound(60000)},
			want: []string{"Carol"},
		},
		{
			name: "max only",
			rng:  SalaryRange{Max: bound(45000)},
			want: []string{"Fay"},
		},
		{
			name: "no bounds returns every numeric salary",
			rng:  SalaryRange{},
			want: []string{"Alice", "Carol", "Fay"},
		},
		{
			name: "bounds are inclusive",
			rng:  SalaryRange{Min: bound(50000), Max: bound(50000)},
			want: []string{"Alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(s.BySalary(tt.rng)))
		})
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{input: "50000", want: 50000, wantOK: true},
		{input: "50000.5", want: 50000.5, wantOK: true},
		{input: " 12 ", want: 12, wantOK: true},
		{input: "abc", wantOK: false},
		{input: "", wantOK: false},
		{input: "nan", wantOK: false},
		{input: "NaN", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSalary(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseBound(t *testing.T) {
	b, err := ParseBound("")
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = ParseBound(" 100 ")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 100.0, *b)

	_, err = ParseBound("lots")
	assert.Error(t, err)
}
