package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// The demo records: one legitimate inquiry and one unsolicited prize claim.
var demoRecords = []mail.Email{
	{
		Sender:  "john.smith@example.com",
		Subject: "Question about your services",
		Body:    "Dear sir, I was referred to you by a colleague and I'm interested in learning more about your consulting services. Could we schedule a call next week? Best regards, John Smith",
	},
	{
		Sender:  "winner@lottery-intl.com",
		Subject: "YOU HAVE WON $5,000,000!!!",
		Body:    "CONGRATULATIONS! You have been selected as the winner of our international lottery! To claim your $5,000,000 prize, please send us your bank details and a processing fee of $100.",
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Process the two built-in demonstration records",
	Long:  `Runs the workflow for a legitimate inquiry and for an unsolicited prize claim, showing both branches of the triage graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		svc, err := newLocalService(cmd, plain)
		if err != nil {
			return err
		}

		for _, email := range demoRecords {
			fmt.Fprintf(cmd.OutOrStdout(), "\nProcessing record from %s...\n", email.Sender)
			outcome, err := svc.Process(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}
			printOutcome(cmd, outcome)
		}
		return nil
	},
}

// printOutcome summarizes a completed run on stdout.
func printOutcome(cmd *cobra.Command, outcome *ports.Outcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: path %v\n", outcome.RunID, outcome.Path)
	switch {
	case outcome.IsFlagged != nil && *outcome.IsFlagged:
		fmt.Fprintf(out, "flagged: %s\n", outcome.FlagReason)
	case outcome.Category != "":
		fmt.Fprintf(out, "category: %s\n", outcome.Category)
	}
}

func init() {
	demoCmd.Flags().Bool("plain", false, "Disable markdown rendering and color")
	rootCmd.AddCommand(demoCmd)
}
