package main

import (
	"certportal/internal/config"
	"certportal/internal/delivery"
	"certportal/internal/qr"
	"certportal/internal/server"
	"certportal/internal/storage"
	"certportal/internal/version"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "certportal",
		Short:        "Certificate delivery portal",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newResolveCmd(&configPath),
		newQRCmd(&configPath),
		newVersionCmd(),
	)

	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			srv, err := server.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start()
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, db, err := openDatabase(ctx, *configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunMigrations(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", cfg.Storage.Database)
			return nil
		},
	}
}

func newResolveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <type-code>",
		Short: "Show which document type a code resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, db, err := openDatabase(ctx, *configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := delivery.NewService(db, nil, cfg.Delivery, server.SetupLogger(cfg))
			docType, canonical, kind, err := svc.ResolveType(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (id %d, %q, %s)\n", args[0], canonical, docType.ID, docType.Title, kind)
			return nil
		},
	}
}

func newQRCmd(configPath *string) *cobra.Command {
	var (
		size   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "qr <content>",
		Short: "Render a QR-only PDF without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := qr.LookupSize(size)
			if err != nil {
				return err
			}

			cfg := &config.Config{
				Log:      config.DefaultLogConfig,
				Delivery: config.DeliveryConfig{Overlay: config.DefaultOverlayConfig},
			}
			if loaded, err := config.LoadConfig(*configPath); err == nil {
				cfg = loaded
			}

			comp := server.NewCompositor(cfg.Delivery.Overlay, server.SetupLogger(cfg))
			res, err := comp.QROnly(cmd.Context(), args[0], preset)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, res.PDF, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d px)\n", output, preset.Pixels)
			return nil
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "S", "QR size code (XS, S, M, L)")
	cmd.Flags().StringVarP(&output, "output", "o", "qr.pdf", "output file")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Print())
		},
	}
}

func openDatabase(ctx context.Context, configPath string) (*config.Config, *storage.DatabaseProvider, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := storage.NewDatabaseProvider(ctx, cfg, server.SetupLogger(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
