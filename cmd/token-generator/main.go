// Command token-generator prints a signed bearer token for the chat gateway.
// The secret is read from BOT_AUTH_JWT_SECRET unless -secret is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "token-generator:", err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	subject := fs.String("subject", "gateway", "identity the token is issued to")
	secret := fs.String("secret", "", "HMAC secret, at least 32 characters (default $BOT_AUTH_JWT_SECRET)")
	lifetime := fs.Int("lifetime", 60*24*30, "token lifetime in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *secret == "" {
		*secret = getenv("BOT_AUTH_JWT_SECRET")
	}

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            *secret,
		TokenLifetimeMinutes: *lifetime,
	})
	if err != nil {
		return err
	}

	token, err := svc.GenerateToken(context.Background(), *subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
