package compose

import (
	"fmt"
	"strings"
	"time"

	"ETCTracker/internal/model"
)

// MarketArticle renders the daily market report in both required formats.
// now is passed in rather than read from the clock so rendering stays
// deterministic.
func MarketArticle(q *model.Quote, analysis model.Narrative, now time.Time) Document {
	dateStr := now.Format("2006-01-02")
	emoji := "📈"
	if q.Change24h < 0 {
		emoji = "📉"
	}

	title := fmt.Sprintf("ETC %s — %.4f $ (%+.2f%%)", dateStr, q.PriceUSD, q.Change24h)
	subtitle := fmt.Sprintf("Cours Ethereum Classic du %s : %.4f USD, variation 24h %+.2f%%",
		dateStr, q.PriceUSD, q.Change24h)

	return Document{
		Title:    title + " " + emoji,
		Subtitle: subtitle,
		Markdown: marketMarkdown(q, analysis, now, title, subtitle, emoji),
		HTML:     marketHTML(q, analysis, now, emoji),
	}
}

func marketMarkdown(q *model.Quote, analysis model.Narrative, now time.Time, title, subtitle, emoji string) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "date: %s+01:00\n", now.Format("2006-01-02T15:04:05"))
	b.WriteString("draft: false\n")
	fmt.Fprintf(&b, "description: %q\n", subtitle)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "## Cours du %s %s\n\n", frenchDate(now.Year(), int(now.Month()), now.Day()), emoji)
	b.WriteString("| Indicateur | Valeur |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| **Prix USD** | %.4f $ |\n", q.PriceUSD)
	fmt.Fprintf(&b, "| **Prix EUR** | %.4f € |\n", q.PriceEUR)
	fmt.Fprintf(&b, "| **Variation 24h** | %+.2f%% |\n", q.Change24h)
	fmt.Fprintf(&b, "| **Variation 7 jours** | %+.2f%% |\n", q.Change7d)
	fmt.Fprintf(&b, "| **Variation 30 jours** | %+.2f%% |\n", q.Change30d)
	fmt.Fprintf(&b, "| **Capitalisation** | %s |\n", FormatBigUSD(q.MarketCapUSD))
	fmt.Fprintf(&b, "| **Volume 24h** | %s |\n", FormatBigUSD(q.Volume24hUSD))
	fmt.Fprintf(&b, "| **Plus haut historique** | %.2f $ |\n\n", q.ATHUSD)

	b.WriteString("## Analyse du jour\n\n")
	b.WriteString(analysis.Text)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "*Données : [CoinGecko](https://www.coingecko.com) (API publique). %s "+
		"Ce site est fourni à titre informatif uniquement — pas de conseil en investissement.*\n",
		attribution(analysis.Provenance))

	return b.String()
}

// attribution names the narrative's origin in the footer, per its provenance.
func attribution(p model.Provenance) string {
	if p == model.ProvenanceAI {
		return "Analyse générée automatiquement par Claude AI (Anthropic)."
	}
	return "Analyse dérivée automatiquement des données de marché."
}

// DigestEntry pairs a news item with its optional reformulated summary.
// An empty Summary means the digest falls back to the raw description.
type DigestEntry struct {
	Item        model.NewsItem
	Summary     string
	AIGenerated bool
}

// NewsDigest renders the daily news page from fetched items and their
// per-item reformulations.
func NewsDigest(entries []DigestEntry, now time.Time) Document {
	dateStr := now.Format("2006-01-02")
	title := fmt.Sprintf("Actualités ETC du %s", dateStr)

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "date: %s+01:00\n", now.Format("2006-01-02T15:04:05"))
	b.WriteString("draft: false\n")
	b.WriteString("description: \"Dernières actualités Ethereum Classic reformulées par IA\"\n")
	b.WriteString("---\n\n")

	b.WriteString("## Actualités Ethereum Classic 📰\n\n")
	for i, e := range entries {
		text := e.Summary
		if text == "" {
			text = e.Item.Description
		}
		if text == "" {
			text = "Pas de description disponible"
		}
		pubdate := ""
		if !e.Item.PublishedAt.IsZero() {
			pubdate = e.Item.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, e.Item.Title)
		fmt.Fprintf(&b, "**Source :** %s (%s)\n\n", e.Item.Source, pubdate)
		fmt.Fprintf(&b, "%s\n\n", text)
		fmt.Fprintf(&b, "[Lire l'article complet →](%s)\n\n---\n\n", e.Item.URL)
	}

	b.WriteString("*Actualités récupérées via [NewsAPI](https://newsapi.org). " +
		"Résumés reformulés par Claude AI (Anthropic). " +
		"Ce contenu est fourni à titre informatif uniquement.*\n")

	return Document{
		Title:    title,
		Subtitle: "Dernières actualités Ethereum Classic reformulées par IA",
		Markdown: b.String(),
	}
}
