package main

import (
	"fmt"
	"time"
)

// humanDurationMS renders a millisecond duration for table output.
func humanDurationMS(ms float64) string {
	d := time.Duration(ms * float64(time.Millisecond))
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fms", ms)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
