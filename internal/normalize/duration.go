package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDurationSeconds parses a duration string into seconds. Two forms
// are accepted: the classic "HH:MM:SS" form used by results (spec §6) and
// Go-style suffixed durations ("5m", "1h30m", "90s") used by fmf source
// (spec §3 "duration string").
func ParseDurationSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duration: empty value")
	}

	if strings.Count(s, ":") == 2 {
		return parseHHMMSS(s)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration: invalid value %q: %w", s, err)
	}
	return d.Seconds(), nil
}

func parseHHMMSS(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("duration: %q is not HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("duration: invalid hours in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("duration: invalid minutes in %q: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("duration: invalid seconds in %q: %w", s, err)
	}
	return float64(h*3600 + m*60 + sec), nil
}

// FormatHHMMSS renders seconds as HH:MM:SS, the form spec §6 requires for
// the results document's `duration` field.
func FormatHHMMSS(seconds float64) string {
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
