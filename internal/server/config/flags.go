package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkovalev2/authgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   access-token HMAC secret
//	-r string   refresh-token HMAC secret
//	-t int      access token validity, minutes
//	-f int      refresh token validity, minutes
//	-u string   user service base URI
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-r", "-t", "-f", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AuthSecretKey, "s", config.AuthSecretKey, "access token secret key")
	fs.StringVar(&config.RefreshSecretKey, "r", config.RefreshSecretKey, "refresh token secret key")
	fs.StringVar(&config.UserServiceURI, "u", config.UserServiceURI, "user service base URI")

	authTokenTTL := fs.Int("t", int(config.AuthTokenTTL.Minutes()), "access token validity (in minutes)")
	refreshTokenTTL := fs.Int("f", int(config.RefreshTokenTTL.Minutes()), "refresh token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// The minute conversion applies only to flags actually passed; otherwise
	// a sub-minute TTL from the environment or the JSON file would be
	// truncated by the round trip through an integer default.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AuthTokenTTL = time.Duration(*authTokenTTL) * time.Minute
		case "f":
			config.RefreshTokenTTL = time.Duration(*refreshTokenTTL) * time.Minute
		}
	})
}
