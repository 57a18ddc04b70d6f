package main

import (
	"encoding/json"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/issuelog"
	"github.com/spf13/cobra"
)

func newIssuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issues",
		Short: "Print the issue log as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			issueLog, err := issuelog.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer issueLog.Close()

			entries, err := issueLog.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			return writeJSON(cmd, data)
		},
	}
}
