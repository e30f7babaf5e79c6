package forecast

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const iconBaseURL = "https://openweathermap.org/img/wn/"

// FormatLocalClockTime renders epoch as a 12-hour clock time at the given UTC
// offset. The offset is added to the instant and the result formatted in UTC,
// so the server's own zone never leaks in.
func FormatLocalClockTime(epoch, utcOffset int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch+utcOffset, 0).UTC().Format("3:04 PM")
}

// FormatLongDate renders e.g. "Tuesday 21st".
func FormatLongDate(epoch int64, loc *time.Location) string {
	if epoch == 0 {
		return ""
	}
	t := inLoc(epoch, loc)
	return fmt.Sprintf("%s %d%s", t.Weekday(), t.Day(), OrdinalSuffix(t.Day()))
}

// FormatShortWeekday renders e.g. "Tue".
func FormatShortWeekday(epoch int64, loc *time.Location) string {
	if epoch == 0 {
		return ""
	}
	return inLoc(epoch, loc).Format("Mon")
}

// OrdinalSuffix returns the English ordinal suffix for a day of month.
func OrdinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// TitleCase upper-cases the first letter of every whitespace-separated word
// and leaves the rest, including the whitespace itself, untouched.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			start = true
			b.WriteRune(r)
			continue
		}
		if start {
			r = unicode.ToUpper(r)
			start = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IconURL returns the provider's icon image for an icon id at the given
// scale ("2x", "4x").
func IconURL(icon, scale string) string {
	if icon == "" {
		return ""
	}
	return iconBaseURL + icon + "@" + scale + ".png"
}

func inLoc(epoch int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(epoch, 0).In(loc)
}
