package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"pitch_backend/internal/app"
	"pitch_backend/internal/model"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:          "pitch",
		Short:        "Investment pitch mini-game backend",
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(logger),
		newMigrateCmd(logger),
		newTokenCmd(logger),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.NewApp(logger).Run(ctx); err != nil {
				logger.Error("server failed", "err", err)
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.NewApp(logger).Migrate(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range applied {
				logger.Info("migration applied", "file", name)
			}
			return nil
		},
	}
}

func newTokenCmd(logger *slog.Logger) *cobra.Command {
	var (
		userID   int64
		nickname string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an access token for a player (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user-id must be positive")
			}
			if nickname == "" {
				nickname = fmt.Sprintf("player%d", userID)
			}
			tok, err := app.NewApp(logger).IssueToken(model.User{ID: userID, Nickname: nickname})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "player id")
	cmd.Flags().StringVar(&nickname, "nickname", "", "player nickname, up to 20 characters")
	return cmd
}
