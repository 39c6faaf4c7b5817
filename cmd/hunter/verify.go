package main

import (
	"github.com/jonathan/hunter/internal/types"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [api_key]",
	Short: "Check whether an email address is deliverable",
	Long:  "Verify the deliverability of an email address. With --file, the CSV must have an email column.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

var (
	verifyEmail string
	verifyFile  string
)

func init() {
	verifyCmd.Flags().StringVar(&verifyEmail, "email", "", "Email address to verify (required unless --file)")
	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "Path to a CSV with one address per row")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	return runRequest(cmd, args, verifyFile, types.VerifyRequest{Email: verifyEmail})
}
