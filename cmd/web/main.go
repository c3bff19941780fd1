// @title           Influencer Marketplace API
// @version         1.0
// @description     Brands publish campaigns, influencers apply and negotiate proposals.
// @host            localhost:5000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"marketplace_backend/database"
	"marketplace_backend/internal/app"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	Version = "1.0.0"
	appName = "web"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Influencer marketplace API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(configPath, database.AutoMigrate)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed-brands",
		Short: "Create the sample brand accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(configPath, func(db *gorm.DB) error {
				brands, err := database.SeedBrands(db)
				if err != nil {
					return err
				}
				for i, b := range brands {
					fmt.Printf("brand%d@example.com  %s\n", i+1, b.CompanyName)
				}
				fmt.Printf("password for all accounts: %s\n", database.SampleBrandPassword)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.Env)
	return cfg, nil
}

func withDatabase(configPath string, fn func(db *gorm.DB) error) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(db)
}
