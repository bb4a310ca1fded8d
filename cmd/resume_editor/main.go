// Package main provides the entry point for the resume editor CLI and
// the profile API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_editor",
	Short: "Structured resume editor",
	Long:  "Resume Editor maintains structured resume profiles with undo history, a durable local cache, background sync to a profile API, and LLM tailoring against job postings.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
