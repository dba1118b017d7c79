package compose

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBigUSD renders a USD amount with a French billion/million unit switch.
// The larger unit wins on its boundary: exactly 1e9 is "1.00 Mrd USD" and
// exactly 1e6 is "1.00 M USD".
func FormatBigUSD(n float64) string {
	if n >= 1_000_000_000 {
		return fmt.Sprintf("%.2f Mrd USD", n/1_000_000_000)
	}
	if n >= 1_000_000 {
		return fmt.Sprintf("%.2f M USD", n/1_000_000)
	}
	return fmt.Sprintf("%s USD", humanize.CommafWithDigits(n, 0))
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// frenchDate renders a day like "3 mai 2026", without a leading zero.
func frenchDate(year int, month int, day int) string {
	return fmt.Sprintf("%d %s %d", day, frenchMonths[month-1], year)
}
