package evidence

import (
	"fmt"
	"strings"
	"time"

	kerrors "github.com/ngaio-labs/ngaio/internal/errors"
)

// FilterOptions narrows an evidence log listing.
type FilterOptions struct {
	// Limit is the maximum number of records to return. 0 means no limit.
	Limit int

	// Reverse orders records from most recent to oldest when true.
	Reverse bool

	// Control filters records by control ID (comma-separated list).
	Control string

	// Actor filters records by actor.
	Actor string

	// Since keeps records on or after this date (YYYY-MM-DD).
	Since string

	// Until keeps records on or before this date (YYYY-MM-DD).
	Until string
}

// Filter applies the options to records, preserving log order unless
// Reverse is set.
func Filter(records []Record, opts FilterOptions) ([]Record, error) {
	filtered := records

	if opts.Control != "" {
		controls := strings.Split(opts.Control, ",")
		for i := range controls {
			controls[i] = strings.TrimSpace(controls[i])
		}
		filtered = filterByControls(filtered, controls)
	}

	if opts.Actor != "" {
		filtered = filterByActor(filtered, opts.Actor)
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterSince(filtered, sinceTime)
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterUntil(filtered, untilTime)
	}

	if opts.Reverse {
		reversed := make([]Record, len(filtered))
		for i, record := range filtered {
			reversed[len(filtered)-1-i] = record
		}
		filtered = reversed
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	return filtered, nil
}

func filterByControls(records []Record, controls []string) []Record {
	allowed := make(map[string]bool, len(controls))
	for _, control := range controls {
		allowed[strings.ToUpper(control)] = true
	}

	var out []Record
	for _, record := range records {
		if allowed[strings.ToUpper(record.ControlID)] {
			out = append(out, record)
		}
	}
	return out
}

func filterByActor(records []Record, actor string) []Record {
	var out []Record
	for _, record := range records {
		if record.Actor == actor {
			out = append(out, record)
		}
	}
	return out
}

func filterSince(records []Record, since time.Time) []Record {
	var out []Record
	for _, record := range records {
		ts, err := parseTimestamp(record.Timestamp)
		if err != nil {
			continue
		}
		if !ts.Before(since) {
			out = append(out, record)
		}
	}
	return out
}

func filterUntil(records []Record, until time.Time) []Record {
	var out []Record
	for _, record := range records {
		ts, err := parseTimestamp(record.Timestamp)
		if err != nil {
			continue
		}
		if !ts.After(until) {
			out = append(out, record)
		}
	}
	return out
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05.000000Z", s)
}
