package main

import (
	"encoding/json"

	"github.com/spacesedan/reviewlens/internal/training"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the model and write tokenizer.json, review_model.gob and training_report.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := training.LoadConfig(trainConfigPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			res, err := training.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(res.Report, "", "  ")
			if err != nil {
				return err
			}
			return writeJSON(cmd, data)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "artifact output directory (overrides output_dir)")
	return cmd
}
