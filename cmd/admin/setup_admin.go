package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cvmaker-backend/internal/bootstrap"
	"cvmaker-backend/internal/shared/config"
)

var setupAdminCmd = &cobra.Command{
	Use:   "setup-admin",
	Short: "Create the admin account or grant admin rights to an existing user",
	RunE:  runSetupAdmin,
}

var (
	adminEmail     string
	adminPassword  string
	adminFirstName string
	adminLastName  string
)

func init() {
	setupAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (defaults to ADMIN_EMAIL)")
	setupAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (prompted when empty)")
	setupAdminCmd.Flags().StringVar(&adminFirstName, "first-name", "Admin", "First name for a new account")
	setupAdminCmd.Flags().StringVar(&adminLastName, "last-name", "User", "Last name for a new account")

	rootCmd.AddCommand(setupAdminCmd)
}

func runSetupAdmin(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	cfg.SeedQuestions = false

	email := strings.TrimSpace(adminEmail)
	if email == "" {
		email = cfg.AdminEmail
	}
	password := adminPassword
	if password == "" {
		var err error
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	app, err := bootstrap.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if app.DB == nil {
		return errors.New("setup-admin needs a reachable DATABASE_URL")
	}

	user, created, err := app.Users.EnsureAdmin(cmd.Context(), email, password, adminFirstName, adminLastName)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "granted admin rights to %s (%s)\n", user.Email, user.ID)
	}
	return nil
}

func promptPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Admin password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			return nil
		},
	}
	return prompt.Run()
}
