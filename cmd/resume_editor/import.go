package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/tailor"
)

var (
	importFile string
	importName string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a plain-text resume as a new profile",
	Long:  `Parse a plain-text resume into structured form with the LLM and store it as a new profile.`,
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Plain-text resume file (required)")
	importCmd.Flags().StringVar(&importName, "name", "Imported Resume", "Name for the new profile")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	apiKey := env.cfg.APIKey
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	ctx := context.Background()
	client, err := tailor.NewGeminiClient(ctx, apiKey, nil)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	resume, err := tailor.NewService(client).ParseResume(ctx, string(data))
	if err != nil {
		return err
	}

	profile, err := env.sync.CreateProfile(ctx, importName, *resume)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %q as profile %s\n", profile.Name, profile.ID)
	return nil
}
