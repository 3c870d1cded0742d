// Package cli wires the pipeline stages behind the command-line interface:
// deck generation, interactive chat and template listing.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/csvdeck/csvdeck/internal/chat"
	"github.com/csvdeck/csvdeck/internal/core/errx"
	"github.com/csvdeck/csvdeck/internal/deck"
	"github.com/csvdeck/csvdeck/internal/narrator"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// Execute runs the root command and returns the process exit code. Every
// pipeline failure surfaces here; nothing is retried.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		logx.Error().Err(err).Str("kind", errx.KindOf(err).String()).Msg("command failed")
		return 1
	}
	return 0
}

type rootOptions struct {
	output        string
	template      string
	chatMode      bool
	listTemplates bool
}

// NewRootCommand builds the csvdeck command tree.
func NewRootCommand() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "csvdeck <csv-file> [question]",
		Short: "Turn CSV data and a question into an AI-narrated slide deck",
		Long: `csvdeck loads a CSV file, computes summary statistics, asks a hosted
language model to narrate insights, renders charts and writes a .pptx deck.
With --chat it answers questions about the dataset interactively instead.`,
		Example: `  csvdeck data.csv "What are the sales trends?"
  csvdeck data.csv "Analyze customer segments" -t modern_blue
  csvdeck data.csv "Revenue analysis" -o report.pptx -t corporate_green
  csvdeck --list-templates
  csvdeck data.csv --chat`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listTemplates {
				printTemplates(cmd.OutOrStdout())
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("csv file argument is required (see --help)")
			}
			csvPath := args[0]

			if opts.chatMode {
				newAnswerer := func(ctx context.Context) (chat.Answerer, error) {
					return buildNarrator(ctx)
				}
				return runChat(cmd.Context(), newAnswerer, csvPath, os.Stdin, cmd.OutOrStdout())
			}

			if len(args) < 2 {
				return fmt.Errorf("a question about the data is required for deck generation")
			}
			newNarrator := func(ctx context.Context) (narratorService, error) {
				return buildNarrator(ctx)
			}
			out, err := runGenerate(cmd.Context(), newNarrator, generateOptions{
				csvPath:  csvPath,
				question: args[1],
				template: opts.template,
				output:   opts.output,
				chartDir: "charts",
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Presentation saved as: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output pptx filename")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "default", "deck template to use")
	cmd.Flags().BoolVar(&opts.chatMode, "chat", false, "interactive Q&A over the dataset summary")
	cmd.Flags().BoolVar(&opts.listTemplates, "list-templates", false, "list available deck templates")

	return cmd
}

func printTemplates(w io.Writer) {
	fmt.Fprintln(w, "Available deck templates:")
	for _, name := range deck.Names() {
		fmt.Fprintf(w, "  %-16s %s\n", name, deck.Describe(name))
	}
	fmt.Fprintln(w, "\nUsage: csvdeck <csv-file> <question> -t <template>")
}

// buildNarrator loads the LLM configuration from the environment and creates
// the live narrator. Deferred until a command actually needs the model so
// --list-templates works without an API key.
func buildNarrator(ctx context.Context) (*narrator.Narrator, error) {
	var cfg narrator.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errx.Wrap(errx.KindNarrator, err, "load llm configuration")
	}
	cm, err := narrator.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logx.Debug().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("narrator ready")
	return narrator.New(cm), nil
}
