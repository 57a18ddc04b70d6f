package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/analyzer"
	"github.com/spacesedan/reviewlens/internal/inference"
	"github.com/spacesedan/reviewlens/internal/issuelog"
	"github.com/spacesedan/reviewlens/internal/sentiment"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var baseline bool

	cmd := &cobra.Command{
		Use:   "analyze [review text]",
		Short: "Analyze one review from the arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("[CLI] failed to read stdin: %w", err)
				}
				text = string(data)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var predictor analyzer.Predictor = sentiment.VaderPredictor{}
			if !baseline {
				engine, err := inference.Load(cfg.ArtifactDir)
				if err != nil {
					return err
				}
				predictor = engine
			}

			issueLog, err := issuelog.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer issueLog.Close()

			result, err := analyzer.New(predictor, issueLog).AnalyzeReview(cmd.Context(), text)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			return writeJSON(cmd, data)
		},
	}
	cmd.Flags().BoolVar(&baseline, "baseline", false, "score with the VADER lexicon instead of the trained model")
	return cmd
}
