package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// enhancePayload is the structured response the chat model is instructed to
// return. RunwayPrompt holds the final directive; the remaining fields exist
// to force the model through an explicit appetite-analysis pass.
type enhancePayload struct {
	Dish                string   `json:"dish"`
	HeroMoment          string   `json:"hero_moment"`
	AppetiteTriggers    []string `json:"appetite_triggers"`
	PresentationDetails string   `json:"presentation_details"`
	RunwayPrompt        string   `json:"runway_prompt"`
}

const enhanceSystemPrompt = `You are a food-marketing director for restaurants. ` +
	`Respond ONLY with valid JSON matching this schema: ` +
	`{"dish":string,"hero_moment":string,"appetite_triggers":string[],` +
	`"presentation_details":string,"runway_prompt":string}. ` +
	`runway_prompt must be a single self-contained directive for a video/image ` +
	`generation model: appetizing, specific about lighting and plating, no raw ` +
	`ingredients or kitchen mess, no text overlays. Do not wrap the JSON in ` +
	`markdown fences or add commentary.`

func buildEnhanceUserPrompt(req Request) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Dish request: %q.", req.Prompt)
	if style := strings.TrimSpace(req.VideoStyle); style != "" {
		fmt.Fprintf(sb, " Desired style: %s.", style)
	}
	if bg := strings.TrimSpace(req.Background); bg != "" {
		fmt.Fprintf(sb, " Setting: %s.", bg)
	}
	if length := strings.TrimSpace(req.Length); length != "" {
		fmt.Fprintf(sb, " Target length: %s.", length)
	}
	if strings.EqualFold(strings.TrimSpace(req.Format), "video") {
		sb.WriteString(" Output is a short marketing video.")
	} else {
		sb.WriteString(" Output is a still marketing photograph; avoid motion language.")
	}
	return sb.String()
}

func parseEnhancePayload(raw string) (*enhancePayload, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, errors.New("empty payload")
	}
	var decoded enhancePayload
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
