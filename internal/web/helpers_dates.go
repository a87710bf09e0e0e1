package web

import (
	"fmt"
	"time"
)

var (
	polishMonths   = [...]string{"sty", "lut", "mar", "kwi", "maj", "cze", "lip", "sie", "wrz", "paź", "lis", "gru"}
	polishWeekdays = [...]string{"niedz.", "pon.", "wt.", "śr.", "czw.", "pt.", "sob."}
)

// matchDateLabel renders e.g. "wt. 20 paź 2026, 18:00" in loc.
func matchDateLabel(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	local := t.In(loc)
	return fmt.Sprintf("%s %d %s %d, %s",
		polishWeekdays[local.Weekday()],
		local.Day(),
		polishMonths[local.Month()-1],
		local.Year(),
		local.Format("15:04"),
	)
}
