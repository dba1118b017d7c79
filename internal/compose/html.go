package compose

import (
	"fmt"
	"strings"
	"time"

	"ETCTracker/internal/model"
)

// marketHTML renders the publishing fragment for the market report: the same
// indicator table as the markdown article, with the analysis wrapped in <p>
// paragraphs the way newsletter platforms expect it.
func marketHTML(q *model.Quote, analysis model.Narrative, now time.Time, emoji string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Cours du %s %s</h2>\n", frenchDate(now.Year(), int(now.Month()), now.Day()), emoji)
	b.WriteString("<table>\n  <thead><tr><th>Indicateur</th><th>Valeur</th></tr></thead>\n  <tbody>\n")
	fmt.Fprintf(&b, "    <tr><td><strong>Prix USD</strong></td><td>%.4f $</td></tr>\n", q.PriceUSD)
	fmt.Fprintf(&b, "    <tr><td><strong>Prix EUR</strong></td><td>%.4f €</td></tr>\n", q.PriceEUR)
	fmt.Fprintf(&b, "    <tr><td><strong>Variation 24h</strong></td><td>%+.2f%%</td></tr>\n", q.Change24h)
	fmt.Fprintf(&b, "    <tr><td><strong>Variation 7 jours</strong></td><td>%+.2f%%</td></tr>\n", q.Change7d)
	fmt.Fprintf(&b, "    <tr><td><strong>Variation 30 jours</strong></td><td>%+.2f%%</td></tr>\n", q.Change30d)
	fmt.Fprintf(&b, "    <tr><td><strong>Capitalisation</strong></td><td>%s</td></tr>\n", FormatBigUSD(q.MarketCapUSD))
	fmt.Fprintf(&b, "    <tr><td><strong>Volume 24h</strong></td><td>%s</td></tr>\n", FormatBigUSD(q.Volume24hUSD))
	fmt.Fprintf(&b, "    <tr><td><strong>Plus haut historique</strong></td><td>%.2f $</td></tr>\n", q.ATHUSD)
	b.WriteString("  </tbody>\n</table>\n\n")

	b.WriteString("<h2>Analyse du jour</h2>\n")
	for _, para := range strings.Split(analysis.Text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", para)
	}

	b.WriteString("\n<hr>\n")
	fmt.Fprintf(&b, "<p><em>Données : <a href=\"https://www.coingecko.com\">CoinGecko</a> (API publique). %s\n"+
		"Ce contenu est fourni à titre informatif uniquement — pas de conseil en investissement.</em></p>\n",
		attribution(analysis.Provenance))

	return b.String()
}
