package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/contactbook/internal/client"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account",
	Long: `Register creates an account on the server. The password is read
from the terminal without echo.

Example:
  contactctl register test1 --name "Test One"`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var registerName string

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name (defaults to the username)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username := args[0]
	name := registerName
	if name == "" {
		name = username
	}

	pw, err := client.GetPassword(os.Stdout)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	user, err := api().Register(cmd.Context(), username, string(pw), name)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (%s)\n", user.Username, user.Name)
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and print a session token",
	Long: `Login exchanges credentials for a session token and prints it.
The username is taken from the argument or prompted for; the password is
read from the terminal without echo.

Example:
  export CONTACTBOOK_TOKEN=$(contactctl login test1)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	var username string
	var err error

	if len(args) == 1 {
		username = args[0]
	} else {
		reader := bufio.NewReader(os.Stdin)
		username, err = client.GetSimpleText(reader, "Username", os.Stderr)
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
	}

	pw, err := client.GetPassword(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	user, err := api().Login(cmd.Context(), username, string(pw))
	if err != nil {
		return err
	}

	// token only, so the output can be captured in a shell variable
	fmt.Println(user.Token)
	return nil
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile behind the current token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := api().CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Username:  %s\n", user.Username)
		fmt.Printf("Name:      %s\n", user.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the current token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api().Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}
