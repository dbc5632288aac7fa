package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TKJapan/diet-mvp/internal/app"
	"github.com/TKJapan/diet-mvp/internal/config"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(userCreateCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create [username]",
		Short: "Create an account, prompting for the password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			be, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = be.store.Close() }()

			password, err := promptPassword()
			if err != nil {
				return err
			}

			authSvc := app.NewAuthService(be.users, be.sessions, 0)
			if err := authSvc.CreateUser(cmd.Context(), args[0], email, password); err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Printf("created user %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(pw) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(pw), nil
}
