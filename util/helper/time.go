package helper_util

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// GetTimeRangeParams reads RFC3339 from/to query parameters. to defaults to
// now and from to window before to.
func GetTimeRangeParams(c *gin.Context, window time.Duration) (from, to time.Time, err error) {
	to = time.Now().UTC()
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	from = to.Add(-window)
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from %s is after to %s", FormatTime(from), FormatTime(to))
	}
	return from, to, nil
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseNullableTime accepts the shapes a timestamp property comes back as
// from the graph store: nil, time.Time or an RFC3339 string.
func ParseNullableTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		return time.Parse(time.RFC3339, v)
	default:
		return time.Time{}, fmt.Errorf("unsupported type for time parsing: %T", value)
	}
}
