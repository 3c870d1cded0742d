// Package chat runs the interactive question-answering loop over a fixed
// dataset summary. Each turn is an independent single narration; no state
// carries across turns beyond the unchanged summary.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// Answerer is the narration surface the loop needs: one answer per question
// against the fixed summary.
type Answerer interface {
	Answer(ctx context.Context, summary, question string) (string, error)
}

// exitCommands terminate the loop.
var exitCommands = map[string]bool{
	"/exit": true,
	"exit":  true,
	"quit":  true,
}

// Loop reads questions line by line and prints one answer per question.
type Loop struct {
	nar     Answerer
	summary string
}

// New creates a chat loop over the given summary.
func New(nar Answerer, summary string) *Loop {
	return &Loop{nar: nar, summary: summary}
}

// Run reads questions from in until an exit command or end of input and
// writes answers to out. Blank lines are skipped. Narration failures are
// reported inline and the loop continues, so one bad request does not end
// the session.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Chat mode: interactive Q&A over the dataset summary.")
	fmt.Fprintln(out, "Type /exit to quit.")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	if l.summary != "" {
		fmt.Fprintln(out, "Dataset summary (used as context):")
		fmt.Fprintln(out, l.summary)
		fmt.Fprintln(out, strings.Repeat("-", 60))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if exitCommands[strings.ToLower(question)] {
			break
		}

		answer, err := l.nar.Answer(ctx, l.summary, question)
		if err != nil {
			logx.Error().Err(err).Msg("chat narration failed")
			fmt.Fprintf(out, "\nerror generating answer: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\n%s\n", answer)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read chat input: %w", err)
	}
	fmt.Fprintln(out, "\nBye.")
	return nil
}
