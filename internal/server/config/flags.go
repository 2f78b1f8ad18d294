package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gameauth/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-r string   Redis address for the profile cache
//	-t int      profile cache TTL, seconds
//	-p string   password hash scheme for new accounts (sha256|bcrypt)
//	-b int      bcrypt cost
//	-o string   CORS allowed origin
//	-l string   log level
//
// Only these flags are parsed; -c/-config is handled by parseJson.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-r", "-t", "-p", "-b", "-o", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address (empty disables the profile cache)")
	cacheTTL := fs.Int("t", int(config.ProfileCacheTTL.Seconds()), "profile cache TTL (in seconds)")
	fs.StringVar(&config.PasswordHashScheme, "p", config.PasswordHashScheme, "password hash scheme: sha256 or bcrypt")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.AllowOrigin, "o", config.AllowOrigin, "CORS allowed origin")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ProfileCacheTTL = time.Duration(*cacheTTL) * time.Second
		}
	})
	return nil
}
