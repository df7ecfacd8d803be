package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "proposalctl",
		Short: "CLI client for the proposal service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Proposal service base URL")

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Store a proposal from a JSON file (or stdin with -)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(storeCmd)

	getCmd := &cobra.Command{
		Use:   "get <proposal-id>",
		Short: "Fetch a stored proposal by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(getCmd)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search proposals by similarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(searchCmd)

	askCmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask a question over stored proposals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(askCmd)

	summarizeCmd := &cobra.Command{
		Use:   "summarize <text>",
		Short: "Generate a short summary for proposal text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(apiFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(summarizeCmd)

	voteCmd := &cobra.Command{
		Use:   "vote <proposal-id>",
		Short: "Update the vote counters of a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			likes, _ := cmd.Flags().GetInt("likes")
			dislikes, _ := cmd.Flags().GetInt("dislikes")
			return runVote(apiFlag, args[0], likes, dislikes, os.Stdout)
		},
	}
	voteCmd.Flags().IntP("likes", "l", 0, "New likes count")
	voteCmd.Flags().IntP("dislikes", "d", 0, "New dislikes count")
	rootCmd.AddCommand(voteCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
