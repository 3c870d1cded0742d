package prompts

import (
	"context"
	"strings"
	"testing"
)

func TestRenderInsights(t *testing.T) {
	got, err := RenderInsights(context.Background(), "S-MARK", "Q-MARK")
	if err != nil {
		t.Fatalf("RenderInsights: %v", err)
	}
	for _, want := range []string{"S-MARK", "Q-MARK", "bullet"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered prompt missing %q:\n%s", want, got)
		}
	}
}

func TestRenderChat(t *testing.T) {
	got, err := RenderChat(context.Background(), "S-MARK", "Q-MARK")
	if err != nil {
		t.Fatalf("RenderChat: %v", err)
	}
	if !strings.Contains(got, "S-MARK") || !strings.Contains(got, "Q-MARK") {
		t.Errorf("rendered prompt missing inputs:\n%s", got)
	}
}

func TestRenderOutline_KeepsJSONSkeleton(t *testing.T) {
	got, err := RenderOutline(context.Background(), "s", "q", "default")
	if err != nil {
		t.Fatalf("RenderOutline: %v", err)
	}
	// the literal JSON braces must survive template rendering
	for _, want := range []string{`"slides"`, `"slide_no"`, "default"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered prompt missing %q:\n%s", want, got)
		}
	}
}
