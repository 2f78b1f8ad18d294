// Package cli implements the gameauth command line client.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gameauth/internal/client/client"
	"github.com/spf13/cobra"
)

const (
	defaultServer  = "http://127.0.0.1:8080"
	defaultTimeout = 10 * time.Second
	serverEnv      = "GAMEAUTH_SERVER"
)

// AccountClient is the server surface used by the commands.
type AccountClient interface {
	Register(ctx context.Context, userName, password string) (*client.Account, error)
	Login(ctx context.Context, userName, password string) (*client.Account, error)
	Profile(ctx context.Context, accountID int64) (*client.Profile, error)
	Health(ctx context.Context) (*client.Health, error)
}

// options are the persistent flags shared by every sub-command.
type options struct {
	server  string
	timeout time.Duration
	output  string

	client AccountClient
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{
		server:  defaultServer,
		timeout: defaultTimeout,
		output:  "text",
	}
	if v := os.Getenv(serverEnv); v != "" {
		opts.server = v
	}

	rootCmd := &cobra.Command{
		Use:   "gameauth",
		Short: "CLI for the gameauth account server",
		Long: `gameauth registers accounts, checks credentials and shows player
profiles by calling the account server's HTTP API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "text" && opts.output != "json" {
				return fmt.Errorf("unknown output format %q", opts.output)
			}
			opts.client = client.NewHTTPClient(opts.server, opts.timeout)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", opts.server, "Server URL (env: "+serverEnv+")")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", opts.timeout, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, json")

	rootCmd.AddCommand(newRegisterCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newProfileCmd(opts))
	rootCmd.AddCommand(newHealthCmd(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// print writes v as indented JSON or as the given text lines.
func (o *options) print(w io.Writer, v any, lines ...string) error {
	if o.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
