package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/finvest"
	"google.golang.org/genai"
)

// Fallback strings shown in place of advice. Advisory failures degrade
// to text: the dashboard keeps working without the AI behind it.
const (
	adviceUnavailable = "The AI advisor could not be reached. Check your API key and try again later."
	adviceEmpty       = "The AI advisor had nothing to say about this portfolio right now."
)

const adviceSystemInstruction = "You are a senior financial analyst, conservative but alert to " +
	"opportunities. Your tone is professional and educational."

// assetLine is the projection of an asset embedded in the prompt.
type assetLine struct {
	Ticker string  `json:"ticker"`
	Type   string  `json:"type"`
	Total  float64 `json:"total"`
}

// Advise asks the text model for a written analysis of the portfolio
// and returns it as opaque prose. It never fails: transport and service
// errors, and empty responses, all collapse into a user-displayable
// fallback string, so a broken advisor cannot interrupt the dashboard.
func (s *Service) Advise(ctx context.Context, assets []finvest.Asset, summary *finvest.Summary) string {
	models, err := s.newGenerator(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("advisor client init failed")
		return adviceUnavailable
	}

	resp, err := models.GenerateContent(ctx, AdviceModel, genai.Text(advisePrompt(assets, summary)), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: adviceSystemInstruction}}},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("advice generation failed")
		return adviceUnavailable
	}
	if text := resp.Text(); text != "" {
		return text
	}
	s.log.Warn().Msg("advice response carried no text")
	return adviceEmpty
}

// advisePrompt embeds the summary figures and a ticker/type/value
// projection of each asset.
func advisePrompt(assets []finvest.Asset, summary *finvest.Summary) string {
	lines := make([]assetLine, 0, len(assets))
	for _, a := range assets {
		lines = append(lines, assetLine{
			Ticker: a.Ticker,
			Type:   a.Type.Label(),
			Total:  a.Valuation().MarketValue.AsFloat(),
		})
	}
	projection, _ := json.Marshal(lines)

	return fmt.Sprintf(`Act as an expert financial advisor and analyse my personal portfolio.

Summary:
- Total value: %s
- Invested: %s
- Profitability: %s

Assets:
%s

Provide a concise three paragraph analysis:
1. Diversification (am I too concentrated?).
2. Improvement or rebalancing suggestions given the current market.
3. A 0 to 10 score for the health of the portfolio.

Use simple Markdown formatting.`,
		summary.TotalValue, summary.TotalInvested, summary.Profitability, projection)
}
