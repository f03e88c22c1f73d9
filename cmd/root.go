package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "fooddelivery",
	Short: "Order, kitchen and dispatch services of a food delivery platform",
	Long: `fooddelivery runs the ordering, kitchen and dispatch services. Services
talk only through the orders, order-status and delivery-location topics, so
they can run as separate processes or together in one.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := LoadConfig(envFile)
		if err != nil {
			return err
		}
		role, err := ParseRole(cfg.ServiceRole)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, role)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment (optional)")

	for _, role := range []Role{RoleOrder, RoleRestaurant, RoleDelivery, RoleAll} {
		rootCmd.AddCommand(roleCommand(role))
	}
}

func roleCommand(role Role) *cobra.Command {
	short := "Run the " + role.ServiceID()
	if role == RoleAll {
		short = "Run all three services in one process"
	}

	return &cobra.Command{
		Use:   string(role),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, role)
		},
	}
}

func serve(ctx context.Context, cfg Config, role Role) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := NewLogger(cfg.LogLevel)
	logger.InfoContext(ctx, "starting", "role", role, "broker", cfg.Broker)
	return Run(ctx, cfg, role, logger)
}

// NewLogger returns the process JSON logger.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
