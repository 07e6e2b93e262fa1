// Package main provides the contactctl CLI, a small client for the contact
// book server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/contactbook/internal/client"
)

var (
	// serverAddr is set by the --addr flag or CONTACTBOOK_ADDR.
	serverAddr string

	// authToken is set by the --token flag or CONTACTBOOK_TOKEN.
	authToken string

	// jsonOutput switches list/get output to raw JSON.
	jsonOutput bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "contactctl",
	Short: "contactctl is a client for the contact book server",
	Long: `contactctl talks to a contact book server over its HTTP API.
Authenticate once with "contactctl login" and export the printed token as
CONTACTBOOK_TOKEN (or pass it with --token) for the other commands.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr",
		envOr("CONTACTBOOK_ADDR", "http://localhost:8080"), "server address")
	rootCmd.PersistentFlags().StringVar(&authToken, "token",
		os.Getenv("CONTACTBOOK_TOKEN"), "session token")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output raw JSON")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(contactCmd)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// api builds a client from the persistent flags.
func api() *client.Client {
	return client.New(serverAddr, authToken)
}
