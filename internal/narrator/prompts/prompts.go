// Package prompts renders the narrator prompt templates. Templates are
// embedded and formatted through the eino prompt component so the rendering
// path matches the rest of the eino model plumbing.
package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/insights_prompt.txt
var insightsPrompt string

//go:embed template/chat_prompt.txt
var chatPrompt string

//go:embed template/outline_prompt.txt
var outlinePrompt string

// RenderInsights renders the insight-narration prompt from the dataset
// summary and the user's question.
func RenderInsights(ctx context.Context, summary, question string) (string, error) {
	return render(ctx, insightsPrompt, map[string]any{
		"Summary":  summary,
		"Question": question,
	})
}

// RenderChat renders the single-turn chat answer prompt.
func RenderChat(ctx context.Context, summary, question string) (string, error) {
	return render(ctx, chatPrompt, map[string]any{
		"Summary":  summary,
		"Question": question,
	})
}

// RenderOutline renders the five-slide outline request prompt.
func RenderOutline(ctx context.Context, summary, question, template string) (string, error) {
	return render(ctx, outlinePrompt, map[string]any{
		"Summary":  summary,
		"Question": question,
		"Template": template,
	})
}

func render(ctx context.Context, tplText string, vars map[string]any) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(tplText),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}
