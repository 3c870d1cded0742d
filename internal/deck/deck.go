package deck

import (
	"strings"
)

// Stage identifies a slide's position in the fixed deck sequence.
type Stage int

const (
	StageTitle Stage = iota
	StageOverview
	StageInsights
	StageChart
	StageRecommendations
)

// SlideSpec is one slide to render: stage, title, bullet lines and embedded
// image paths. Compose produces these deterministically from its inputs;
// Write turns them into the pptx file.
type SlideSpec struct {
	Stage   Stage
	Title   string
	Bullets []string
	Images  []string
}

// Content carries everything the deck embeds: the user question, the model
// narration, the slide outline and the chart image paths.
type Content struct {
	Question string
	Insights string
	Outline  Outline
	Charts   []string
}

// Builder assembles decks in one template's styling.
type Builder struct {
	tpl Template
}

// NewBuilder creates a Builder for the given template.
func NewBuilder(tpl Template) *Builder {
	return &Builder{tpl: tpl}
}

// Compose lays out the fixed five-slide sequence: title, overview, insights,
// chart, recommendations. Outline text fills titles and bullets; the stage
// order never changes. Same inputs always produce the same specs.
func (b *Builder) Compose(c Content) []SlideSpec {
	o := c.Outline
	if len(o.Slides) != deckSlides {
		o = DefaultOutline(c.Question)
	}

	insights := insightLines(c.Insights)
	if len(insights) == 0 {
		insights = o.Slides[2].Content
	}

	return []SlideSpec{
		{Stage: StageTitle, Title: o.Slides[0].Title, Bullets: append(o.Slides[0].Content, c.Question)},
		{Stage: StageOverview, Title: o.Slides[1].Title, Bullets: o.Slides[1].Content},
		{Stage: StageInsights, Title: o.Slides[2].Title, Bullets: insights},
		{Stage: StageChart, Title: o.Slides[3].Title, Bullets: o.Slides[3].Content, Images: c.Charts},
		{Stage: StageRecommendations, Title: o.Slides[4].Title, Bullets: o.Slides[4].Content},
	}
}

// maxInsightLines caps the insight slide so long narrations do not overflow.
const maxInsightLines = 6

// insightLines splits narrator prose into clean bullet lines, dropping list
// markers and bold markup the model tends to emit.
func insightLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = stripBold(strings.TrimSpace(line))
		line = strings.TrimLeft(line, "-*•►▪◦‣ \t")
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxInsightLines {
			break
		}
	}
	return out
}

// stripBold removes ** and __ emphasis markers.
func stripBold(text string) string {
	for _, marker := range []string{"**", "__"} {
		for strings.Count(text, marker) >= 2 {
			start := strings.Index(text, marker)
			end := strings.Index(text[start+2:], marker)
			if end == -1 {
				break
			}
			text = text[:start] + text[start+2:start+2+end] + text[start+2+end+2:]
		}
	}
	return text
}
