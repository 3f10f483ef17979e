package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/courierflow/courier"
	"github.com/courierflow/courier/pkg/mail"
)

// processCmd runs the triage workflow for a single record supplied via
// flags or a YAML/JSON file.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the triage workflow for one record",
	Long:  `Processes a single email record through the workflow graph and prints the outcome. The record comes from --file (YAML or JSON) or from the --sender/--subject/--body flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := recordFromFlags(cmd)
		if err != nil {
			return err
		}

		fallback, _ := cmd.Flags().GetBool("fallback")
		plain, _ := cmd.Flags().GetBool("plain")

		var opts []courier.Option
		if fallback {
			opts = append(opts, courier.WithUnflaggedFallback())
		}

		svc, err := newLocalService(cmd, plain, opts...)
		if err != nil {
			return err
		}

		outcome, err := svc.Process(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		printOutcome(cmd, outcome)
		return nil
	},
}

func recordFromFlags(cmd *cobra.Command) (mail.Email, error) {
	var email mail.Email

	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return email, fmt.Errorf("read record file: %w", err)
		}

		// YAML is a superset of JSON, so one decode path covers both.
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return email, fmt.Errorf("parse record file: %w", err)
		}
		if err := mapstructure.Decode(raw, &email); err != nil {
			return email, fmt.Errorf("decode record: %w", err)
		}
		return email, nil
	}

	email.Sender, _ = cmd.Flags().GetString("sender")
	email.Subject, _ = cmd.Flags().GetString("subject")
	email.Body, _ = cmd.Flags().GetString("body")
	if email.Sender == "" {
		return email, fmt.Errorf("either --file or --sender is required")
	}
	return email, nil
}

func init() {
	processCmd.Flags().String("file", "", "Record file (YAML or JSON with sender, subject, body)")
	processCmd.Flags().String("sender", "", "Record sender address")
	processCmd.Flags().String("subject", "", "Record subject")
	processCmd.Flags().String("body", "", "Record body")
	processCmd.Flags().Bool("fallback", false, "Treat an unreachable classifier as not flagged")
	processCmd.Flags().Bool("plain", false, "Disable markdown rendering and color")
	rootCmd.AddCommand(processCmd)
}
