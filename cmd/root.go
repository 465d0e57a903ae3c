package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sousnote/internal/app"
	"sousnote/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sousnote",
	Short: "Voice-first note capture and grocery lists",
	Long: `Sousnote turns dictated or typed text into structured notes: task
lists, categorized grocery lists, and AI-generated recipes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// contextKey avoids collisions with other context values.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity and other diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Checking backend connectivity...")
		if err := appInstance.Ping(ctx); err != nil {
			return fmt.Errorf("connectivity check failed: %w", err)
		}
		fmt.Println("All configured backends reachable.")

		if err := appInstance.Config.Validate(); err != nil {
			fmt.Printf("Configuration is incomplete for server/worker use:\n%v\n", err)
		}
		if appInstance.Config.AI.OpenaiApiKey == "" && appInstance.Config.AI.GeminiApiKey == "" {
			fmt.Println("Note: no AI provider keys configured; extraction uses the local heuristic only.")
		}
		return nil
	},
}
