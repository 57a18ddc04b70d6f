package main

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/artifacts"
	"github.com/spacesedan/reviewlens/internal/training"
	"github.com/spf13/cobra"
)

func newDeployCmd() *cobra.Command {
	var (
		target    string
		skipTrain bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Train, then publish the artifacts to a serving directory or s3:// prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load()
			if err != nil {
				return err
			}
			dest := target
			if dest == "" {
				dest = appCfg.ArtifactS3URI
			}
			if dest == "" {
				dest = appCfg.ArtifactDir
			}

			cfg, err := training.LoadConfig(trainConfigPath)
			if err != nil {
				return err
			}
			if !skipTrain {
				if _, err := training.Run(cmd.Context(), cfg); err != nil {
					return err
				}
			}

			if err := artifacts.Publish(cmd.Context(), cfg.OutputDir, dest, appCfg.AWSRegion, appCfg.AWSEndpoint); err != nil {
				return err
			}
			slog.Info("[Deploy] Deployment complete", slog.String("target", dest))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deployed artifacts to %s\n", dest)
			return err
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "serving directory or s3://bucket/prefix (defaults to ARTIFACT_S3_URI, then ARTIFACT_DIR)")
	cmd.Flags().BoolVar(&skipTrain, "skip-train", false, "publish existing artifacts without retraining")
	return cmd
}
