package params

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hotel/internal/pkg/apperr"
)

// DateLayout is the ISO calendar date accepted on the wire.
const DateLayout = "2006-01-02"

// PathID parses a positive int64 path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}

// ParseDate parses a YYYY-MM-DD value into midnight UTC.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperr.Validation(field+" is required", map[string]string{field: "required"})
	}
	d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid "+field, map[string]string{field: "must be a date in YYYY-MM-DD format"})
	}
	return d, nil
}

// QueryDates reads the arrival and departure query parameters.
func QueryDates(c *gin.Context) (arrival, departure time.Time, err error) {
	arrival, err = ParseDate("arrival", c.Query("arrival"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	departure, err = ParseDate("departure", c.Query("departure"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return arrival, departure, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
