package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ETCTracker/internal/model"
)

const (
	analysisMaxTokens    = 450
	reformulateMaxTokens = 300
)

// AnthropicGenerator implements Generator using the Claude messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicGenerator(apiKey string) *AnthropicGenerator {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGenerator{
		client: &client,
		model:  anthropic.ModelClaudeHaiku4_5,
	}
}

func (g *AnthropicGenerator) MarketAnalysis(ctx context.Context, q *model.Quote) (string, error) {
	var b strings.Builder
	b.WriteString("Tu es un analyste de marché spécialisé dans les cryptomonnaies. " +
		"Rédige en français un commentaire de marché factuel et nuancé (150–200 mots) " +
		"sur l'Ethereum Classic (ETC) à partir des données ci-dessous. " +
		"N'émets aucune recommandation d'investissement. " +
		"Ne commence pas ta réponse par 'L'Ethereum Classic'.\n\n")
	fmt.Fprintf(&b, "Prix          : %.4f USD  /  %.4f EUR\n", q.PriceUSD, q.PriceEUR)
	fmt.Fprintf(&b, "Variation 24h : %+.2f%%\n", q.Change24h)
	fmt.Fprintf(&b, "Variation 7j  : %+.2f%%\n", q.Change7d)
	fmt.Fprintf(&b, "Variation 30j : %+.2f%%\n", q.Change30d)
	fmt.Fprintf(&b, "Capitalisation: %.0f USD\n", q.MarketCapUSD)
	fmt.Fprintf(&b, "Volume 24h    : %.0f USD\n", q.Volume24hUSD)
	fmt.Fprintf(&b, "ATH           : %.2f USD (le %s)", q.ATHUSD, q.ATHDate)

	return g.generate(ctx, b.String(), analysisMaxTokens)
}

func (g *AnthropicGenerator) Reformulate(ctx context.Context, title, description string) (string, error) {
	prompt := fmt.Sprintf("Tu es un spécialiste des cryptomonnaies. "+
		"Reformule cet article d'actualité en français en 2-3 phrases claires et précises. "+
		"Concentre-toi sur l'essentiel. "+
		"Ne commence pas par 'Cet article...' ou 'L'actualité...'.\n\n"+
		"Titre : %s\nContenu : %s", title, description)

	return g.generate(ctx, prompt, reformulateMaxTokens)
}

func (g *AnthropicGenerator) generate(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}
	return strings.TrimSpace(resp.Content[0].Text), nil
}
