// Package narrator turns analysis summaries into prose through a hosted
// language model. Every narration is one synchronous request; failures wrap
// as narrator errors and propagate without retry.
package narrator

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/csvdeck/csvdeck/internal/core/errx"
	"github.com/csvdeck/csvdeck/internal/narrator/prompts"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// Narrator issues single-turn completions against a chat model. The model is
// injected as an interface so tests can substitute a stub.
type Narrator struct {
	model model.BaseChatModel
}

// New creates a Narrator around the given chat model.
func New(m model.BaseChatModel) *Narrator {
	return &Narrator{model: m}
}

// Insights asks the model for bullet-point insights over the summary.
func (n *Narrator) Insights(ctx context.Context, summary, question string) (string, error) {
	p, err := prompts.RenderInsights(ctx, summary, question)
	if err != nil {
		return "", errx.Wrap(errx.KindNarrator, err, "insights prompt")
	}
	return n.complete(ctx, p)
}

// Answer asks the model a single chat question against the fixed summary.
func (n *Narrator) Answer(ctx context.Context, summary, question string) (string, error) {
	p, err := prompts.RenderChat(ctx, summary, question)
	if err != nil {
		return "", errx.Wrap(errx.KindNarrator, err, "chat prompt")
	}
	return n.complete(ctx, p)
}

// Outline asks the model for a five-slide outline in JSON form. The raw
// response is returned verbatim; the deck package owns extraction and the
// fallback when the model returns something unusable.
func (n *Narrator) Outline(ctx context.Context, summary, question, template string) (string, error) {
	p, err := prompts.RenderOutline(ctx, summary, question, template)
	if err != nil {
		return "", errx.Wrap(errx.KindNarrator, err, "outline prompt")
	}
	return n.complete(ctx, p)
}

func (n *Narrator) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := n.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", errx.Wrap(errx.KindNarrator, err, "model request")
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", errx.New(errx.KindNarrator, "model returned empty response")
	}
	logx.Debug().Int("prompt_len", len(prompt)).Int("response_len", len(resp.Content)).Msg("narration complete")
	return strings.TrimSpace(resp.Content), nil
}
