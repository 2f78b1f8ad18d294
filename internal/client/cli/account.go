package cli

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gameauth/internal/client/client"
	"github.com/spf13/cobra"
)

// credentials fills in whatever of user and pass was not given by flag,
// prompting on the command's input and output.
func credentials(cmd *cobra.Command, user, pass string) (string, string, error) {
	var err error
	if user == "" {
		user, err = GetSimpleText(bufio.NewReader(cmd.InOrStdin()), "Username", cmd.OutOrStdout())
		if err != nil {
			return "", "", err
		}
	}
	if pass == "" {
		pass, err = GetPassword(cmd.OutOrStdout())
		if err != nil {
			return "", "", err
		}
	}
	return user, pass, nil
}

func accountLines(a *client.Account) []string {
	return []string{
		fmt.Sprintf("id: %d", a.ID),
		fmt.Sprintf("username: %s", a.UserName),
		fmt.Sprintf("balance: %d", a.Balance),
	}
}

func newRegisterCmd(opts *options) *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, pass, err := credentials(cmd, user, pass)
			if err != nil {
				return err
			}

			a, err := opts.client.Register(cmd.Context(), user, pass)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), a, accountLines(a)...)
		},
	}

	cmd.Flags().StringVarP(&user, "username", "u", "", "Account name (prompted when empty)")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "Password (prompted without echo when empty)")

	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and show the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, pass, err := credentials(cmd, user, pass)
			if err != nil {
				return err
			}

			a, err := opts.client.Login(cmd.Context(), user, pass)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), a, accountLines(a)...)
		},
	}

	cmd.Flags().StringVarP(&user, "username", "u", "", "Account name (prompted when empty)")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "Password (prompted without echo when empty)")

	return cmd
}

func newProfileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <id>",
		Short: "Show an account with its game statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid account id %q", args[0])
			}

			p, err := opts.client.Profile(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), p,
				fmt.Sprintf("id: %d", p.ID),
				fmt.Sprintf("username: %s", p.UserName),
				fmt.Sprintf("balance: %d", p.Balance),
				fmt.Sprintf("kills: %d", p.Kills),
				fmt.Sprintf("deaths: %d", p.Deaths),
				fmt.Sprintf("wins: %d", p.Wins),
				fmt.Sprintf("losses: %d", p.Losses),
			)
		},
	}
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), h, "status: "+h.Status)
		},
	}
}
