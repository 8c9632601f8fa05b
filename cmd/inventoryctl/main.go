package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-inventory/internal/config"
	"go-inventory/internal/migrations"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/connection"
	"go-inventory/internal/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "inventoryctl",
	Short:         "Inventory API administration",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect schema migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		ctx := cmd.Context()
		switch args[0] {
		case "up":
			return migrations.Up(ctx, sqlDB)
		case "down":
			return migrations.Down(ctx, sqlDB)
		case "status":
			return migrations.Status(ctx, sqlDB)
		default:
			return fmt.Errorf("unknown migrate action %q", args[0])
		}
	},
}

var (
	userName     string
	userEmail    string
	userPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user that can log in",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		svc := user.NewService(sqlDB, user.NewRepository(db))
		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Name:     userName,
			Email:    userEmail,
			Password: userPassword,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %s <%s> id=%s\n", resp.Name, resp.Email, resp.ID)
		return nil
	},
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return connection.ConnectGORMWithRetry(cfg.Database.DSN(), 1)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")

	createUserCmd.Flags().StringVar(&userName, "name", "", "display name")
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "login e-mail")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "plain password, at least 6 characters")
	_ = createUserCmd.MarkFlagRequired("name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(migrateCmd, createUserCmd)
}

func main() {
	log, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(log)
	apperror.Init()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
