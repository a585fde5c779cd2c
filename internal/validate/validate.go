package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reID   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reUser = regexp.MustCompile(`^[A-Za-z0-9._-]{3,30}$`)
)

// sortColumns whitelists the fields a listing may be ordered by. Anything
// else is rejected before it gets near a query.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"lprice":    "lprice",
	"myprice":   "myprice",
	"createdAt": "created_at",
}

// ID validates a resource identifier (product/folder ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// SortColumn maps an exposed sort field name to its column. Unknown fields
// are not interpolated into SQL.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[strings.TrimSpace(field)]
	return col, ok
}

// Page parses a 1-based page number, defaulting to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Size parses a page size, clamped to avoid abuse.
func Size(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 10
	}
	if n > 100 {
		return 100
	}
	return n
}

// FolderName validates a displayable folder name.
func FolderName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Title validates a product title coming from the client or the search source.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 200 {
		return "", false
	}
	return s, true
}
