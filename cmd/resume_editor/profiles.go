package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/types"
)

var (
	profileName string
	profileID   string
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List resume profiles",
	Long:  `List all resume profiles in the local cache, with the active profile marked and each profile's sync status.`,
	RunE:  runProfiles,
}

var createProfileCmd = &cobra.Command{
	Use:   "create-profile",
	Short: "Create a new resume profile",
	RunE:  runCreateProfile,
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete-profile",
	Short: "Delete a resume profile",
	Long:  `Delete a resume profile. The last remaining profile cannot be deleted.`,
	RunE:  runDeleteProfile,
}

var renameProfileCmd = &cobra.Command{
	Use:   "rename-profile",
	Short: "Rename a resume profile",
	RunE:  runRenameProfile,
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch-profile",
	Short: "Make a profile the active document",
	RunE:  runSwitchProfile,
}

func init() {
	createProfileCmd.Flags().StringVar(&profileName, "name", "", "Profile name (required)")
	_ = createProfileCmd.MarkFlagRequired("name")

	deleteProfileCmd.Flags().StringVar(&profileID, "id", "", "Profile ID (required)")
	_ = deleteProfileCmd.MarkFlagRequired("id")

	renameProfileCmd.Flags().StringVar(&profileID, "id", "", "Profile ID (required)")
	renameProfileCmd.Flags().StringVar(&profileName, "name", "", "New profile name (required)")
	_ = renameProfileCmd.MarkFlagRequired("id")
	_ = renameProfileCmd.MarkFlagRequired("name")

	switchProfileCmd.Flags().StringVar(&profileID, "id", "", "Profile ID (required)")
	_ = switchProfileCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(profilesCmd, createProfileCmd, deleteProfileCmd, renameProfileCmd, switchProfileCmd)
}

func runProfiles(_ *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	if _, err := env.sync.ActiveProfile(ctx); err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintProfiles(env.store.List(), env.sync.Status)
	return nil
}

func runCreateProfile(_ *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	profile, err := env.sync.CreateProfile(context.Background(), profileName, types.NewBlankResume(""))
	if err != nil {
		return err
	}

	fmt.Printf("Created profile %q (%s)\n", profile.Name, profile.ID)
	return nil
}

func runDeleteProfile(_ *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := uuid.Parse(profileID)
	if err != nil {
		return fmt.Errorf("invalid profile ID: %w", err)
	}

	if err := env.sync.DeleteProfile(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted profile %s\n", id)
	return nil
}

func runRenameProfile(_ *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := uuid.Parse(profileID)
	if err != nil {
		return fmt.Errorf("invalid profile ID: %w", err)
	}

	if err := env.sync.RenameProfile(context.Background(), id, profileName); err != nil {
		return err
	}

	fmt.Printf("Renamed profile %s to %q\n", id, profileName)
	return nil
}

func runSwitchProfile(_ *cobra.Command, _ []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	id, err := uuid.Parse(profileID)
	if err != nil {
		return fmt.Errorf("invalid profile ID: %w", err)
	}

	if err := env.sync.SwitchProfile(context.Background(), id); err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintDocument(env.editor.Document())
	return nil
}
