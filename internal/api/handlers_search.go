// handlers_search.go - Roster search handler
package api

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/roster"
	"github.com/roster-manager/backend/internal/web"
)

// HandleSearch renders the main page with the results of a name, state or
// salary search. An unknown search type yields no results.
func (h *RosterHandlerImpl) HandleSearch(c echo.Context) error {
	results := []models.SearchResult{}

	switch roster.SearchType(c.FormValue("search_type")) {
	case roster.SearchByName:
		results = h.store.ByName(c.FormValue("search_name"))
	case roster.SearchByState:
		results = h.store.ByState(c.FormValue("search_state"))
	case roster.SearchBySalary:
		if r, ok := salaryRange(c); ok {
			results = h.store.BySalary(r)
		}
	}

	return renderIndex(c, h.store, results)
}

// salaryRange reads the optional min_salary and max_salary bounds. A bound
// that is not a number is reported as a notice and fails the search.
func salaryRange(c echo.Context) (roster.SalaryRange, bool) {
	var r roster.SalaryRange
	ok := true

	for _, b := range []struct {
		field string
		dst   **float64
	}{
		{"min_salary", &r.Min},
		{"max_salary", &r.Max},
	} {
		raw := c.FormValue(b.field)
		v, err := roster.ParseBound(raw)
		if err != nil {
			web.AddFlash(c, fmt.Sprintf(noticeBadSalary, raw))
			ok = false
			continue
		}
		*b.dst = v
	}
	return r, ok
}
