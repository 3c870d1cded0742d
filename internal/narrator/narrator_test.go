package narrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/csvdeck/csvdeck/internal/core/errx"
)

// fakeChatModel scripts Generate responses and records the prompts it saw.
type fakeChatModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	for _, m := range input {
		f.prompts = append(f.prompts, m.Content)
	}
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported in tests")
}

func TestInsights_PromptCarriesSummaryAndQuestion(t *testing.T) {
	fake := &fakeChatModel{reply: "  - North leads revenue  \n"}
	n := New(fake)

	got, err := n.Insights(context.Background(), "SUMMARY-MARKER", "QUESTION-MARKER")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if got != "- North leads revenue" {
		t.Errorf("Insights = %q, want trimmed reply", got)
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("prompts = %d, want 1", len(fake.prompts))
	}
	p := fake.prompts[0]
	if !strings.Contains(p, "SUMMARY-MARKER") || !strings.Contains(p, "QUESTION-MARKER") {
		t.Errorf("prompt missing inputs:\n%s", p)
	}
}

func TestAnswer_UsesChatPrompt(t *testing.T) {
	fake := &fakeChatModel{reply: "yes"}
	n := New(fake)

	if _, err := n.Answer(context.Background(), "s", "q"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(fake.prompts[0], "data analyst assistant") {
		t.Errorf("unexpected prompt:\n%s", fake.prompts[0])
	}
}

func TestOutline_PromptCarriesTemplateName(t *testing.T) {
	fake := &fakeChatModel{reply: "{}"}
	n := New(fake)

	if _, err := n.Outline(context.Background(), "s", "q", "corporate_green"); err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if !strings.Contains(fake.prompts[0], "corporate_green") {
		t.Errorf("prompt missing template name:\n%s", fake.prompts[0])
	}
}

func TestComplete_ModelErrorWrapsAsNarrator(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("boom")}
	n := New(fake)

	_, err := n.Insights(context.Background(), "s", "q")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errx.IsKind(err, errx.KindNarrator) {
		t.Errorf("kind = %v, want narrator", errx.KindOf(err))
	}
	if !errors.Is(err, fake.err) {
		t.Error("underlying error not preserved in chain")
	}
}

func TestComplete_EmptyResponseIsError(t *testing.T) {
	fake := &fakeChatModel{reply: "   \n "}
	n := New(fake)

	_, err := n.Answer(context.Background(), "s", "q")
	if !errx.IsKind(err, errx.KindNarrator) {
		t.Errorf("kind = %v, want narrator", errx.KindOf(err))
	}
}
