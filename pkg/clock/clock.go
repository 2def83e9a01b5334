// Package clock parses the 12-hour time-of-day strings the dashboard works
// with ("8:30am", "12:00 pm") and combines them with calendar dates.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day in 24-hour terms.
type Clock struct {
	Hour   int
	Minute int
}

var clockRe = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(am|pm)\s*$`)

// Parse converts "h:mm" followed by am/pm (case-insensitive) to a Clock.
// "12:00am" maps to hour 0 and "12:00pm" to hour 12. Malformed input is an
// error; callers must not paper over it with a default.
func Parse(s string) (Clock, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("unparseable clock string %q", s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 {
		return Clock{}, fmt.Errorf("clock hour %d out of 12-hour range", hour)
	}
	if minute > 59 {
		return Clock{}, fmt.Errorf("clock minute %d out of range", minute)
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// Combine pins a Clock onto the calendar day of date, in date's location.
func Combine(date time.Time, c Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// SlotStart extracts the starting clock from a day-slot range such as
// "7:00 am - 8:00 am".
func SlotStart(slot string) (Clock, error) {
	start, _, found := strings.Cut(slot, "-")
	if !found {
		start = slot
	}
	return Parse(strings.TrimSpace(start))
}

func (c Clock) String() string {
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "am"
	if c.Hour >= 12 {
		suffix = "pm"
	}
	return fmt.Sprintf("%d:%02d%s", hour, c.Minute, suffix)
}
