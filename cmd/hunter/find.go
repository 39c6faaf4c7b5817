package main

import (
	"github.com/jonathan/hunter/internal/types"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [api_key]",
	Short: "Find the most likely email address of a person",
	Long:  "Guess a person's email address from their name and company domain. With --file, the CSV must have domain, first_name and last_name columns.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

var (
	findDomain    string
	findFirstName string
	findLastName  string
	findFile      string
)

func init() {
	findCmd.Flags().StringVar(&findDomain, "domain", "", "Company domain (required unless --file)")
	findCmd.Flags().StringVar(&findFirstName, "first_name", "", "First name (required unless --file)")
	findCmd.Flags().StringVar(&findLastName, "last_name", "", "Last name (required unless --file)")
	findCmd.Flags().StringVar(&findFile, "file", "", "Path to a CSV with one person per row")

	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	return runRequest(cmd, args, findFile, types.FindRequest{
		Domain:    findDomain,
		FirstName: findFirstName,
		LastName:  findLastName,
	})
}
