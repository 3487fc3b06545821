package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"rent-agent/domain"
)

// AIService generates a narrative explanation of a finished plan. It is
// optional: without an API key it is disabled and every call falls back to
// a deterministic per-strategy explanation.
type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService(logger *zap.Logger) *AIService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	enabled := apiKey != ""

	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GeneratePlanExplanation turns the scored plan into a short, plain-language
// explanation of why this strategy fits this tenant.
func (s *AIService) GeneratePlanExplanation(
	ctx context.Context,
	strategy domain.NegotiationStrategy,
	leverage domain.LeverageScore,
	success domain.SuccessEstimate,
	market domain.MarketEstimate,
	currentRent domain.Money,
	targetRent *domain.Money,
) string {
	if !s.enabled {
		return s.fallbackExplanation(strategy, leverage, success, market)
	}

	marketContext := "No reliable market data is available for this location; guidance is qualitative."
	if market.Available() {
		marketContext = fmt.Sprintf(
			"Market median %s, comparable range %s-%s, data confidence %.0f%%.",
			*market.Median, market.Range.Low, market.Range.High, market.Confidence*100)
	}

	targetContext := ""
	if targetRent != nil {
		targetContext = fmt.Sprintf("Target rent: %s (a %s reduction).",
			*targetRent, currentRent-*targetRent)
	}

	prompt := fmt.Sprintf(`Explain this rent negotiation plan to the tenant in plain language.

SITUATION:
- Current rent: %s
- %s
- %s
- Recommended strategy: %s
- Leverage score: %.1f/10 (market %.1f, financial %.1f, relationship %.1f, timing %.1f)
- Estimated success: %.0f%% (range %.0f-%.0f%%)

INSTRUCTIONS:
1. Explain in 3-4 sentences why the %s strategy fits this combination of leverage factors.
2. Reference the actual numbers above rather than generalities.
3. If market data confidence is low or absent, say plainly that the estimate is rough.
4. Be encouraging but realistic; do not promise an outcome.`,
		currentRent, marketContext, targetContext, strategy,
		leverage.Total, leverage.Factors.Market, leverage.Factors.Financial,
		leverage.Factors.Relationship, leverage.Factors.Timing,
		success.Overall, success.ConfidenceInterval.Min, success.ConfidenceInterval.Max,
		strategy)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI explanation failed, using fallback", zap.Error(err))
		return s.fallbackExplanation(strategy, leverage, success, market)
	}
	return explanation
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role: "system",
				Content: "You are an experienced rent-negotiation coach. You explain negotiation plans " +
					"in clear, encouraging, realistic language. You never promise outcomes, never give " +
					"legal advice, and always ground your explanation in the numbers you are given.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) fallbackExplanation(
	strategy domain.NegotiationStrategy,
	leverage domain.LeverageScore,
	success domain.SuccessEstimate,
	market domain.MarketEstimate,
) string {
	marketNote := ""
	if !market.Available() {
		marketNote = " Market data for your area is limited, so treat the probability as a rough estimate and lean on the comparables you gather yourself."
	} else if market.Confidence < 0.4 {
		marketNote = " The available market data disagrees with itself, so the probability band is wide."
	}

	base := fmt.Sprintf(
		"your overall leverage is %.1f/10 and the estimated chance of a meaningful concession is %.0f%% (%.0f-%.0f%%).",
		leverage.Total, success.Overall,
		success.ConfidenceInterval.Min, success.ConfidenceInterval.Max)

	switch strategy {
	case domain.StrategyLeverageFocused:
		return fmt.Sprintf("The plan leads with your strongest cards, because %s Presenting your market evidence and alternatives early makes the cost of losing you concrete.%s", base, marketNote)
	case domain.StrategyRelationshipBuilding:
		return fmt.Sprintf("The plan works through the relationship you have built, because %s A landlord who values a reliable tenant will often move on price to keep one.%s", base, marketNote)
	case domain.StrategyStrategicPatience:
		return fmt.Sprintf("The plan holds your ask back until timing favors you, because %s Pressing before the renewal window would spend your leverage early.%s", base, marketNote)
	case domain.StrategyAssertiveCollaborative:
		return fmt.Sprintf("The plan pairs firm numbers with a cooperative frame, because %s You have enough leverage to name a number and enough goodwill to keep the conversation open.%s", base, marketNote)
	default:
		return fmt.Sprintf("The plan treats the rent as a problem you and the landlord solve together, because %s Balanced leverage rewards keeping both sides invested in an agreement.%s", base, marketNote)
	}
}
