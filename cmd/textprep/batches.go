package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/textcnn-prep/internal/batch"
	"github.com/example/textcnn-prep/internal/config"
)

func newBatchesCmd() *cobra.Command {
	var dataSize int

	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Print mini-batch index partitions for a dataset",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return writeBatches(os.Stdout, dataSize, cfg.Batch)
		},
	}

	cmd.Flags().IntVar(&dataSize, "size", 0, "Number of examples in the dataset")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

// shuffleSource returns a seeded source, or nil to use the package-level
// source when seed is zero.
func shuffleSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func writeBatches(w io.Writer, dataSize int, cfg config.BatchConfig) error {
	b, err := batch.Indices(dataSize, cfg.Size, cfg.Shuffle, shuffleSource(cfg.Seed))
	if err != nil {
		return err
	}

	slog.Debug("batches",
		slog.Int("data_size", dataSize),
		slog.Int("batch_size", cfg.Size),
		slog.Int("batches", b.Len()),
		slog.Bool("shuffle", cfg.Shuffle),
	)

	if err := json.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
