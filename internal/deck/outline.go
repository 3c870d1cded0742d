package deck

import (
	"encoding/json"
	"strings"

	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// deckSlides is the fixed number of slides in every generated deck.
const deckSlides = 5

// OutlineSlide is one slide suggestion from the model: a title plus short
// bullet lines. Slide position and stage are fixed by the pipeline, so only
// the text survives from the model output.
type OutlineSlide struct {
	No      int      `json:"slide_no"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Content []string `json:"content"`
}

// Outline is the model-suggested slide text for the whole deck.
type Outline struct {
	Slides []OutlineSlide `json:"slides"`
}

// ParseOutline extracts the outline JSON from raw model output. Models wrap
// JSON in code fences or prose, so extraction takes everything between the
// first '{' and the last '}'. Any parse or shape problem falls back to the
// deterministic default outline.
func ParseOutline(raw, question string) Outline {
	text := raw
	if i := strings.Index(text, "```"); i >= 0 {
		text = stripFences(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		logx.Warn().Msg("outline response carried no JSON, using default outline")
		return DefaultOutline(question)
	}

	var out Outline
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		logx.Warn().Err(err).Msg("outline JSON unparsable, using default outline")
		return DefaultOutline(question)
	}
	if len(out.Slides) != deckSlides {
		logx.Warn().Int("slides", len(out.Slides)).Msg("outline slide count off, using default outline")
		return DefaultOutline(question)
	}
	for i := range out.Slides {
		if strings.TrimSpace(out.Slides[i].Title) == "" {
			logx.Warn().Int("slide", i+1).Msg("outline slide missing title, using default outline")
			return DefaultOutline(question)
		}
	}
	return out
}

func stripFences(text string) string {
	parts := strings.Split(text, "```")
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(strings.TrimSpace(inner), "json")
	return inner
}

// DefaultOutline is the deterministic fallback used when the model response
// cannot be parsed. Titles reference the question so the deck still reads as
// an answer to it.
func DefaultOutline(question string) Outline {
	topic := question
	if r := []rune(topic); len(r) > 35 {
		topic = string(r[:35])
	}
	return Outline{Slides: []OutlineSlide{
		{No: 1, Title: "Executive Summary: " + topic, Type: "title",
			Content: []string{"Key insights and findings from the data analysis"}},
		{No: 2, Title: "Data Overview & Analysis Approach", Type: "content",
			Content: []string{
				"Dataset scope and key characteristics",
				"Descriptive statistics over every column",
				"Data quality notes including missing values",
			}},
		{No: 3, Title: "Primary Data Insights", Type: "content",
			Content: []string{
				"Most significant patterns discovered in the data",
				"Key performance indicators and metrics",
				"Trends affecting business outcomes",
			}},
		{No: 4, Title: "Data Visualization", Type: "chart",
			Content: []string{
				"Distribution of the leading numeric measure",
				"Share of the top categories",
				"Visual evidence for the findings above",
			}},
		{No: 5, Title: "Strategic Recommendations", Type: "content",
			Content: []string{
				"Primary recommendation based on the data",
				"Immediate action items for implementation",
				"Longer-term opportunities to investigate",
			}},
	}}
}
