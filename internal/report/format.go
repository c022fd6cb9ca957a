package report

import (
	"fmt"
	"time"
)

// FormatDuration renders d as "H h MM min", rounding down to whole minutes.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%s%d h %02d min", sign, minutes/60, minutes%60)
}

// Minutes returns the number of whole minutes in d.
func Minutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}
