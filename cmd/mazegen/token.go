package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/spf13/cobra"
)

type tokenOptions struct {
	secret string
	issuer string
	client string
	ttl    time.Duration
}

// newTokenCmd issues bearer tokens accepted by the API's protected routes.
func newTokenCmd() *cobra.Command {
	opts := tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the maze API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.secret == "" || opts.issuer == "" || opts.client == "" {
				return errors.New("--secret, --issuer and --client are required")
			}
			if opts.ttl <= 0 {
				return errors.New("--ttl must be positive")
			}

			jwt, err := token.NewJwtService(opts.secret, opts.issuer).Generate(map[string]interface{}{"sub": opts.client}, opts.ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), jwt)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.secret, "secret", "", "JWT signing secret (JWT_SECRET of the server)")
	cmd.Flags().StringVar(&opts.issuer, "issuer", "", "JWT issuer (JWT_ISSUER of the server)")
	cmd.Flags().StringVar(&opts.client, "client", "", "subject recorded in the token")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
