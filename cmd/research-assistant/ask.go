// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/research"
)

const questionPrompt = "Enter your research question: "

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer one research question on the command line",
	Long: `Ask gathers documents for a question from every source, asks the language
model for a cited answer, and prints the answer followed by the numbered
source list. Without arguments it prompts for the question on stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCredential(); err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		output, _ := cmd.Flags().GetString("output")
		out := cmd.OutOrStdout()

		question, err := readQuestion(args, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}

		pipeline, err := newPipeline(appConfig, logger, nil)
		if err != nil {
			return err
		}

		progressOut := out
		if asJSON {
			progressOut = cmd.ErrOrStderr()
		}
		report, err := pipeline.Run(cmd.Context(), question, printProgress(progressOut))
		switch {
		case errors.Is(err, research.ErrNoInformation):
			// Reported as "No results found." below.
		case err != nil:
			return err
		}

		if output != "" {
			if err := research.Export(report, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", output)
		}
		if asJSON {
			return research.WriteJSON(report, out)
		}
		research.WriteText(report, out)
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("json", false, "print the report as JSON instead of text")
	askCmd.Flags().StringP("output", "o", "", "also write the report to a .yaml, .yml, or .json file")
	askCmd.Flags().Bool("parallel", false, "query the sources concurrently")
	askCmd.Flags().String("paper-backend", "", "paper search backend: arxiv, semantic_scholar, or openalex")
	askCmd.Flags().String("model", "", "language model identifier")

	viper.BindPFlag("sources.parallel", askCmd.Flags().Lookup("parallel"))
	viper.BindPFlag("sources.paper_backend", askCmd.Flags().Lookup("paper-backend"))
	viper.BindPFlag("summarizer.model", askCmd.Flags().Lookup("model"))

	rootCmd.AddCommand(askCmd)
}

// readQuestion joins args into the question, or prompts once on in when
// there are none.
func readQuestion(args []string, in io.Reader, out io.Writer) (string, error) {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q, nil
	}

	fmt.Fprint(out, questionPrompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading question: %w", err)
	}
	q := strings.TrimSpace(line)
	if q == "" {
		return "", research.ErrEmptyQuery
	}
	return q, nil
}

// printProgress reports pipeline stages the way the line-mode shell shows
// them.
func printProgress(w io.Writer) research.Progress {
	return func(e research.Event) {
		switch e.Stage {
		case research.StageGathering:
			fmt.Fprintln(w, "\nGathering information...")
		case research.StageSummarizing:
			fmt.Fprintf(w, "Fetched %d documents. Summarizing with %s...\n\n", e.Documents, e.Model)
		}
	}
}
