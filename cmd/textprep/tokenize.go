package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/textcnn-prep/internal/config"
	"github.com/example/textcnn-prep/internal/text"
)

func newTokenizeCmd() *cobra.Command {
	var (
		input   string
		join    bool
		perLine bool
	)

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Normalize text into lowercase word tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			raw, err := readInput(input, os.Stdin)
			if err != nil {
				return err
			}

			docs := []string{raw}
			if perLine {
				docs = splitLines(raw)
			}

			slog.Debug("tokenize",
				slog.Int("documents", len(docs)),
				slog.Bool("remove_stopwords", cfg.Text.RemoveStopwords),
				slog.Bool("join", join),
			)

			return writeTokens(os.Stdout, docs, textOptions(cfg), join)
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to tokenize (reads stdin when empty)")
	cmd.Flags().BoolVar(&join, "join", false, "Print each document as one space-joined string")
	cmd.Flags().BoolVar(&perLine, "per-line", false, "Treat every input line as a separate document")

	return cmd
}

// textOptions builds normalizer options from config. An empty stopword list
// is passed as a nil set so that requesting removal without stopwords fails.
func textOptions(cfg config.Config) text.Options {
	opts := text.Options{
		RemoveStopwords: cfg.Text.RemoveStopwords,
		FoldUnicode:     cfg.Text.FoldUnicode,
	}
	if len(cfg.Text.Stopwords) > 0 {
		opts.Stopwords = text.NewStopwordSet(cfg.Text.Stopwords...)
	}
	return opts
}

// writeTokens writes one JSON value per document: a token array, or a string
// when join is set.
func writeTokens(w io.Writer, docs []string, opts text.Options, join bool) error {
	enc := json.NewEncoder(w)
	for i, doc := range docs {
		var v any
		if join {
			s, err := text.Join(doc, opts)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			v = s
		} else {
			words, err := text.Words(doc, opts)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			v = words
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func readInput(input string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(input) != "" {
		return input, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	raw := strings.TrimSpace(string(b))
	if raw == "" {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}
	return raw, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	docs := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			docs = append(docs, l)
		}
	}
	return docs
}
