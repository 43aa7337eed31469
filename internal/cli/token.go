package cli

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/parcel-service/internal/middleware"
	"github.com/spf13/cobra"
)

func newTokenCommand(o *options) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.cfg.Auth.JWTSecretKey == "" {
				return errors.New("JWT_SECRET_KEY is not set")
			}
			token, err := middleware.IssueToken([]byte(o.cfg.Auth.JWTSecretKey), subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject, recorded as the request principal")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newSecretCommand() *cobra.Command {
	var (
		size int
		hash bool
	)
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a random value for JWT_SECRET_KEY or API_KEYS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size < 16 {
				return fmt.Errorf("--bytes must be at least 16, got %d", size)
			}
			buf := make([]byte, size)
			if _, err := rand.Read(buf); err != nil {
				return err
			}
			secret := base64.StdEncoding.EncodeToString(buf)
			if !hash {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), secret)
				return err
			}
			hashed, err := middleware.HashKey(secret)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "key:      %s\napi_keys: %s\n", secret, hashed)
			return err
		},
	}
	cmd.Flags().IntVar(&size, "bytes", 32, "number of random bytes")
	cmd.Flags().BoolVar(&hash, "hash", false, "also print the bcrypt form to put in API_KEYS")
	return cmd
}
