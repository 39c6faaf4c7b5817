package main

import (
	"github.com/jonathan/hunter/internal/types"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [api_key]",
	Short: "Find every known email address at a domain",
	Long:  "Search a domain for email addresses. With --file, the CSV must have a domain column and may have limit, offset and type columns.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

var (
	searchDomain string
	searchLimit  int
	searchOffset int
	searchType   string
	searchFile   string
)

func init() {
	searchCmd.Flags().StringVar(&searchDomain, "domain", "", "Domain to search (required unless --file)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", types.DefaultLimit, "Maximum number of emails to return")
	searchCmd.Flags().IntVar(&searchOffset, "offset", types.DefaultOffset, "Number of emails to skip")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Only return personal or generic emails")
	searchCmd.Flags().StringVar(&searchFile, "file", "", "Path to a CSV with one search per row")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return runRequest(cmd, args, searchFile, types.SearchRequest{
		Domain: searchDomain,
		Limit:  searchLimit,
		Offset: searchOffset,
		Type:   searchType,
	})
}
