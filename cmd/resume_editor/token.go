package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/server"
)

var (
	tokenUser string
	tokenOut  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development session token",
	Long:  `Generate a signed session token for local development. Requires JWT_SECRET to match the server's.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID to embed (default: a fresh ID)")
	tokenCmd.Flags().StringVar(&tokenOut, "out", "", "Write the token to this file instead of stdout")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	userID := uuid.New()
	if tokenUser != "" {
		parsed, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid user ID: %w", err)
		}
		userID = parsed
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(userID)
	if err != nil {
		return err
	}

	if tokenOut != "" {
		if err := os.WriteFile(tokenOut, []byte(token+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write token file: %w", err)
		}
		fmt.Printf("Token for user %s written to %s\n", userID, tokenOut)
		return nil
	}

	fmt.Println(token)
	return nil
}
