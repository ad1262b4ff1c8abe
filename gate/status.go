package gate

import (
	"fmt"
	"strconv"
	"strings"
)

type statusRange struct {
	lo, hi int
}

// StatusMatcher decides which HTTP status codes count as a successful probe.
// The zero value accepts every status code.
type StatusMatcher struct {
	ranges []statusRange
}

// ParseStatusMatcher parses a comma separated list of codes and ranges,
// e.g. "200-299,301". An empty expression accepts any status.
func ParseStatusMatcher(expr string) (StatusMatcher, error) {
	var m StatusMatcher
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return m, nil
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		loCode, err := parseStatusCode(lo)
		if err != nil {
			return StatusMatcher{}, err
		}
		hiCode := loCode
		if isRange {
			hiCode, err = parseStatusCode(hi)
			if err != nil {
				return StatusMatcher{}, err
			}
			if hiCode < loCode {
				return StatusMatcher{}, fmt.Errorf("invalid status range %q", part)
			}
		}
		m.ranges = append(m.ranges, statusRange{lo: loCode, hi: hiCode})
	}

	return m, nil
}

func parseStatusCode(s string) (int, error) {
	code, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || code < 100 || code > 599 {
		return 0, fmt.Errorf("invalid status code %q", s)
	}
	return code, nil
}

// Match reports whether code is accepted.
func (m StatusMatcher) Match(code int) bool {
	if len(m.ranges) == 0 {
		return true
	}
	for _, r := range m.ranges {
		if code >= r.lo && code <= r.hi {
			return true
		}
	}
	return false
}

func (m StatusMatcher) String() string {
	if len(m.ranges) == 0 {
		return "any"
	}
	parts := make([]string, 0, len(m.ranges))
	for _, r := range m.ranges {
		if r.lo == r.hi {
			parts = append(parts, strconv.Itoa(r.lo))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", r.lo, r.hi))
		}
	}
	return strings.Join(parts, ",")
}
