package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

const defaultPageLimit = 6

// numericFields is the allow-list for numericFilters tokens. Tokens naming
// any other field are dropped without an error.
var numericFields = map[string]struct{}{
	"price":           {},
	"numberBedrooms":  {},
	"numberBathrooms": {},
}

// numericOps is ordered so two-character operators match before their
// one-character prefixes.
var numericOps = []string{
	ports.OpGreaterEqual,
	ports.OpLessEqual,
	ports.OpGreater,
	ports.OpLess,
	ports.OpEqual,
}

// parsePropertyFilter translates the listing query string into a
// ports.PropertyFilter. Parsing is permissive: malformed numeric tokens are
// dropped, non-numeric page/limit values fall back to defaults and boolean
// parameters are only a filter when present.
func parsePropertyFilter(c echo.Context) ports.PropertyFilter {
	q := c.QueryParams()

	filter := ports.PropertyFilter{
		Title: q.Get("title"),
		State: q.Get("state"),
		City:  q.Get("city"),
	}

	if q.Has("petAllowed") {
		v := q.Get("petAllowed") == "true"
		filter.PetAllowed = &v
	}
	if q.Has("hasGarage") {
		v := q.Get("hasGarage") == "true"
		filter.HasGarage = &v
	}
	if q.Has("announceType") {
		at := domain.ParseAnnounceType(q.Get("announceType"))
		filter.AnnounceType = &at
	}

	filter.Numeric = parseNumericFilters(q.Get("numericFilters"))
	filter.Sort = splitList(q.Get("sort"))
	filter.Select = splitList(q.Get("select"))
	filter.Page = parsePositiveInt(q.Get("page"), 1)
	filter.Limit = parsePositiveInt(q.Get("limit"), defaultPageLimit)

	return filter
}

// parseLocationFilter translates the location query string into a
// ports.LocationFilter.
func parseLocationFilter(c echo.Context) ports.LocationFilter {
	q := c.QueryParams()
	return ports.LocationFilter{
		State:  q.Get("state"),
		City:   q.Get("city"),
		Sort:   splitList(q.Get("sort")),
		Select: splitList(q.Get("select")),
	}
}

// parseNumericFilters tokenizes a comma-separated list of `field<op>value`
// conditions. Tokens with an unknown field, unknown operator or non-integer
// value are skipped.
func parseNumericFilters(raw string) []ports.NumericFilter {
	if raw == "" {
		return nil
	}

	var filters []ports.NumericFilter
	for _, tok := range strings.Split(raw, ",") {
		f, ok := parseNumericToken(tok)
		if !ok {
			continue
		}
		filters = append(filters, f)
	}
	return filters
}

func parseNumericToken(tok string) (ports.NumericFilter, bool) {
	for _, op := range numericOps {
		i := strings.Index(tok, op)
		if i < 0 {
			continue
		}
		field := tok[:i]
		if _, ok := numericFields[field]; !ok {
			return ports.NumericFilter{}, false
		}
		value, err := strconv.ParseInt(tok[i+len(op):], 10, 64)
		if err != nil {
			return ports.NumericFilter{}, false
		}
		return ports.NumericFilter{Field: field, Op: op, Value: value}, true
	}
	return ports.NumericFilter{}, false
}

// splitList splits a comma-separated parameter, trimming blanks but keeping
// order and duplicates.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
