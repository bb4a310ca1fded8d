package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/fetch"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/tailor"
)

var (
	tailorURL     string
	tailorFile    string
	tailorApply   bool
	tailorBrowser bool
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor the active resume to a job posting",
	Long: `Rewrite the active profile's summary and experience bullets against a
job posting. Without --apply the tailored draft is previewed and then
discarded, restoring the document exactly as it was.`,
	RunE: runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&tailorURL, "url", "", "Job posting URL")
	tailorCmd.Flags().StringVar(&tailorFile, "file", "", "File containing the job description text")
	tailorCmd.Flags().BoolVar(&tailorApply, "apply", false, "Keep the tailored result instead of previewing")
	tailorCmd.Flags().BoolVar(&tailorBrowser, "browser", false, "Allow headless-browser rendering for SPA job boards")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	if (tailorURL == "") == (tailorFile == "") {
		return fmt.Errorf("exactly one of --url or --file is required")
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	apiKey := env.cfg.APIKey
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	if _, err := env.loadActive(ctx); err != nil {
		return err
	}

	client, err := tailor.NewGeminiClient(ctx, apiKey, nil)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	svc := tailor.NewService(client)

	jobDescription, err := readJobDescription(ctx, svc)
	if err != nil {
		return err
	}

	env.editor.Dispatch(editor.SetJobDescription{JobDescription: jobDescription})
	env.editor.Dispatch(editor.StartTailoring{})

	tailored, err := svc.TailorResume(ctx, env.editor.Document(), jobDescription)
	if err != nil {
		env.editor.Dispatch(editor.DiscardTailoring{})
		return err
	}

	env.editor.Dispatch(editor.SetSummary{Summary: tailored.Summary})
	for _, entry := range tailored.Experience {
		env.editor.Dispatch(editor.UpdateEntry{Entry: entry})
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintDocument(env.editor.Document())
	printer.PrintExperience(env.editor.Document().Experience)

	if !tailorApply {
		env.editor.Dispatch(editor.DiscardTailoring{})
		fmt.Println("Preview only; document restored. Re-run with --apply to keep the result.")
		return nil
	}

	env.editor.Dispatch(editor.ApplyTailoring{})
	env.sync.SaveNow()
	fmt.Println("Tailored resume applied and saved.")
	return nil
}

func readJobDescription(ctx context.Context, svc *tailor.Service) (string, error) {
	if tailorFile != "" {
		data, err := os.ReadFile(tailorFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file: %w", err)
		}
		return string(data), nil
	}

	opts := fetch.DefaultOptions()
	opts.AllowBrowser = tailorBrowser
	return svc.JobDescriptionFromURL(ctx, tailorURL, opts)
}
