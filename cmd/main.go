package main

import (
	"context"
	"os"

	"github.com/deringirish/PHMS/cmd/bootstrap"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "phms",
		Short:         "Patient health management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), createAdminCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			if migrate {
				if err := app.Migrate(); err != nil {
					return err
				}
			}
			return app.Serve(context.Background())
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run database migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Migrate()
		},
	}
}

func createAdminCmd() *cobra.Command {
	var userID, name, password, secret string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.CreateAdmin(cmd.Context(), userID, name, password, secret)
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "login user id")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&secret, "secret", "", "secret password required to delete admins")
	for _, flag := range []string{"user-id", "name", "password", "secret"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func seedCmd() *cobra.Command {
	var patients, records int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the medication catalog and optional sample patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Seed(cmd.Context(), patients, records)
		},
	}
	cmd.Flags().IntVar(&patients, "patients", 0, "number of sample patients to create")
	cmd.Flags().IntVar(&records, "records", 6, "health records per sample patient")
	return cmd
}
