package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate as quiz administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				password = readLine(bufio.NewScanner(cmd.InOrStdin()))
			}
			if !rt.auth.Login(cmd.Context(), password) {
				return fmt.Errorf("login failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "admin password (prompted when empty)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the admin credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()
			rt.auth.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an admin credential is held",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()
			if rt.auth.IsAuthenticated(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Authenticated (credential held; validity is only known after a request).")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not authenticated.")
			}
			return nil
		},
	}
}
