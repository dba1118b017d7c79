package narrative

import (
	"fmt"
	"math"
	"strings"

	"ETCTracker/internal/compose"
	"ETCTracker/internal/model"
)

// trendBuckets maps the 24h change to a trend label and one qualifying
// sentence. Comparisons are strict, so a boundary value belongs to the bucket
// below it: exactly +5% reads as "hausse", not "forte hausse".
var trendBuckets = []struct {
	minChange float64
	trend     string
	note      string
}{
	{5, "forte hausse", "Le momentum haussier est marqué sur la séance."},
	{2, "hausse", "Les acheteurs gardent l'avantage."},
	{0, "légère progression", "Le cours avance prudemment en territoire positif."},
	{-2, "légère correction", "La pression vendeuse reste contenue."},
	{-5, "baisse", "Les vendeurs prennent le dessus sur la séance."},
}

func trendFor(change24h float64) (trend, note string) {
	for _, bkt := range trendBuckets {
		if change24h > bkt.minChange {
			return bkt.trend, bkt.note
		}
	}
	return "forte baisse", "La pression vendeuse est significative."
}

// BasicAnalysis derives a market commentary from the quote alone, with no
// external call. It is a pure function of its input: the same quote always
// yields byte-identical text.
func BasicAnalysis(q *model.Quote) string {
	trend, note := trendFor(q.Change24h)

	athPct := (q.PriceUSD/q.ATHUSD - 1) * 100
	direction := "au-dessus de"
	if athPct < 0 {
		direction = "en dessous de"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "L'ETC affiche une %s de %+.2f%% sur les dernières 24 heures. %s\n\n",
		trend, q.Change24h, note)
	fmt.Fprintf(&b, "Sur une semaine glissante, la performance s'établit à %+.2f%%, "+
		"et à %+.2f%% sur le dernier mois. "+
		"Le volume journalier atteint %s pour une capitalisation de %s.\n\n",
		q.Change7d, q.Change30d,
		compose.FormatBigUSD(q.Volume24hUSD), compose.FormatBigUSD(q.MarketCapUSD))
	fmt.Fprintf(&b, "Le cours se situe actuellement à %.1f%% %s son sommet historique de %.2f USD (atteint le %s).",
		math.Abs(athPct), direction, q.ATHUSD, q.ATHDate)

	return b.String()
}
