package narrative

import (
	"strings"
	"testing"

	"ETCTracker/internal/model"
)

func TestTrendFor_AllBoundaries(t *testing.T) {
	// Comparisons are strict >, so exact boundary values fall into the
	// bucket below.
	tests := []struct {
		change float64
		trend  string
	}{
		{8.00, "forte hausse"},
		{5.01, "forte hausse"},
		{5.00, "hausse"},
		{3.20, "hausse"},
		{2.01, "hausse"},
		{2.00, "légère progression"},
		{0.01, "légère progression"},
		{0.00, "légère correction"},
		{-1.99, "légère correction"},
		{-2.00, "baisse"},
		{-4.99, "baisse"},
		{-5.00, "forte baisse"},
		{-7.00, "forte baisse"},
	}
	for _, tt := range tests {
		trend, note := trendFor(tt.change)
		if trend != tt.trend {
			t.Errorf("change %+.2f: expected %q, got %q", tt.change, tt.trend, trend)
		}
		if note == "" {
			t.Errorf("change %+.2f: expected a qualifying sentence", tt.change)
		}
	}
}

func TestBasicAnalysis_Deterministic(t *testing.T) {
	q := &model.Quote{
		PriceUSD:     18.5,
		PriceEUR:     17.1,
		Change24h:    3.2,
		Change7d:     -1.1,
		Change30d:    10.0,
		MarketCapUSD: 2_800_000_000,
		Volume24hUSD: 150_000_000,
		ATHUSD:       45.0,
		ATHDate:      "2021-05-06",
	}
	first := BasicAnalysis(q)
	second := BasicAnalysis(q)
	if first != second {
		t.Fatal("expected byte-identical output for identical input")
	}
}

func TestBasicAnalysis_Scenario(t *testing.T) {
	q := &model.Quote{
		PriceUSD:     18.5,
		Change24h:    3.20,
		Change7d:     -1.10,
		Change30d:    10.00,
		MarketCapUSD: 2_800_000_000,
		Volume24hUSD: 150_000_000,
		ATHUSD:       45.00,
		ATHDate:      "2021-05-06",
	}
	text := BasicAnalysis(q)

	for _, want := range []string{
		"une hausse de +3.20%",
		"Les acheteurs gardent l'avantage.",
		"s'établit à -1.10%",
		"à +10.00% sur le dernier mois",
		"150.00 M USD",
		"2.80 Mrd USD",
		"58.9% en dessous de",
		"45.00 USD (atteint le 2021-05-06)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected narrative to contain %q\ngot:\n%s", want, text)
		}
	}
	if strings.Contains(text, "forte hausse") {
		t.Error("change +3.20%% must not classify as forte hausse")
	}
}

func TestBasicAnalysis_ATHDirection(t *testing.T) {
	base := model.Quote{
		MarketCapUSD: 2_000_000_000,
		Volume24hUSD: 100_000_000,
		ATHDate:      "2021-05-06",
	}

	below := base
	below.PriceUSD = 18.5
	below.ATHUSD = 45.0
	if text := BasicAnalysis(&below); !strings.Contains(text, "en dessous de") {
		t.Errorf("price below ATH should read en dessous de, got:\n%s", text)
	}

	above := base
	above.PriceUSD = 50.0
	above.ATHUSD = 45.0
	if text := BasicAnalysis(&above); !strings.Contains(text, "au-dessus de") {
		t.Errorf("price above ATH should read au-dessus de, got:\n%s", text)
	}

	// Exactly at the ATH the distance is zero and the `< 0` comparison is
	// false, so direction stays "au-dessus de".
	at := base
	at.PriceUSD = 45.0
	at.ATHUSD = 45.0
	text := BasicAnalysis(&at)
	if !strings.Contains(text, "à 0.0% au-dessus de") {
		t.Errorf("price == ATH should report 0.0%% au-dessus de, got:\n%s", text)
	}
}
