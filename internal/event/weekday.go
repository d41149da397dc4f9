package event

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a bit set of the weekdays on which a series repeats.
type WeekdaySet uint8

// weekdayLetters lists the accepted letters in display order. R is
// Thursday and U is Sunday, the usual scheduling shorthand.
const weekdayLetters = "MTWRFSU"

var letterDays = map[byte]time.Weekday{
	'M': time.Monday,
	'T': time.Tuesday,
	'W': time.Wednesday,
	'R': time.Thursday,
	'F': time.Friday,
	'S': time.Saturday,
	'U': time.Sunday,
}

// ParseWeekdays converts a compact weekday string such as "MWF" into a
// WeekdaySet. Letters may appear in any order and any case. An empty
// string, an unknown letter, or a repeated letter is rejected.
func ParseWeekdays(s string) (WeekdaySet, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("weekday set must not be empty")
	}
	var set WeekdaySet
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		day, ok := letterDays[c]
		if !ok {
			return 0, fmt.Errorf("unknown weekday letter %q in %q", string(s[i]), s)
		}
		if set.Contains(day) {
			return 0, fmt.Errorf("weekday letter %q repeats in %q", string(c), s)
		}
		set |= 1 << uint(day)
	}
	return set, nil
}

// Contains reports whether day is a member of the set.
func (ws WeekdaySet) Contains(day time.Weekday) bool {
	return ws&(1<<uint(day)) != 0
}

// Weekdays lists the members in Monday-first display order.
func (ws WeekdaySet) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for i := 0; i < len(weekdayLetters); i++ {
		if day := letterDays[weekdayLetters[i]]; ws.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

// String renders the set with the same letters ParseWeekdays accepts.
func (ws WeekdaySet) String() string {
	var b strings.Builder
	for i := 0; i < len(weekdayLetters); i++ {
		if ws.Contains(letterDays[weekdayLetters[i]]) {
			b.WriteByte(weekdayLetters[i])
		}
	}
	return b.String()
}
