package trends

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/carworth/carworth/internal/dates"
)

// TrendsURL holds the fetch parameters recovered from a pasted price-trends
// link. StartDate and EndDate are YYYY-MM-DD strings and may be empty when
// the link carried no explicit range.
type TrendsURL struct {
	ModelPath string
	EntityID  string
	StartDate string
	EndDate   string
}

// ParseTrendsURL extracts the model path, entity id and optional date range
// from a price-trends page URL. Links copied out of shells or chat clients
// often arrive with backslash-escaped query metacharacters; those are
// unescaped before parsing.
func ParseTrendsURL(raw string) (TrendsURL, error) {
	cleaned := strings.NewReplacer(`\?`, `?`, `\=`, `=`, `\&`, `&`).Replace(strings.TrimSpace(raw))

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return TrendsURL{}, fmt.Errorf("parsing url: %w", err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 3 || !containsSegment(segments, "price-trends") {
		return TrendsURL{}, fmt.Errorf("not a price-trends url: %q", raw)
	}
	modelPath := segments[len(segments)-1]
	if modelPath == "" || modelPath == "price-trends" {
		return TrendsURL{}, fmt.Errorf("url has no model path: %q", raw)
	}

	query := parsed.Query()
	entityID := query.Get("entityIds")
	if entityID == "" {
		return TrendsURL{}, fmt.Errorf("url has no entityIds parameter: %q", raw)
	}

	return TrendsURL{
		ModelPath: modelPath,
		EntityID:  entityID,
		StartDate: dateFromMillisParam(query.Get("startDate")),
		EndDate:   dateFromMillisParam(query.Get("endDate")),
	}, nil
}

func containsSegment(segments []string, want string) bool {
	for _, s := range segments {
		if s == want {
			return true
		}
	}
	return false
}

// dateFromMillisParam converts an epoch-milliseconds query value to a
// calendar date string. Absent or malformed values yield "", leaving the
// range to default downstream.
func dateFromMillisParam(value string) string {
	if value == "" {
		return ""
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms < 0 {
		return ""
	}
	return dates.FromUnixMilli(ms).String()
}
