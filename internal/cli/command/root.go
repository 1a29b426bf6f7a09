// Package command provides CLI command definitions for authgate-cli.
package command

import (
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/authgate-io/authgate/internal/cli/connection"
	"github.com/authgate-io/authgate/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "authgate-cli",
		Usage:   "authgate command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			CallCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "authgate server address (e.g., localhost:8080)",
			EnvVars: []string{"AUTHGATE_SERVER"},
			Value:   "localhost:8080",
		},
		&cli.StringFlag{
			Name:    "cache",
			Usage:   "Token cache file path",
			EnvVars: []string{"AUTHGATE_TOKEN_CACHE"},
		},
	}
}

// cachePath resolves the token cache location from flags.
func cachePath(c *cli.Context) (string, error) {
	if path := c.String("cache"); path != "" {
		return path, nil
	}
	return connection.DefaultCachePath()
}

// authenticatedClient loads the cached token and builds a client with it.
func authenticatedClient(c *cli.Context) (*connection.HTTPClient, *connection.CachedToken, string, error) {
	path, err := cachePath(c)
	if err != nil {
		return nil, nil, "", err
	}
	cached, err := connection.LoadToken(path)
	if err != nil {
		return nil, nil, "", err
	}

	server := c.String("server")
	if !c.IsSet("server") && cached.Server != "" {
		server = cached.Server
	}
	return connection.NewHTTPClient(server, cached.Token), cached, path, nil
}

// syncRenewal updates the cache when the server renewed the token.
func syncRenewal(path string, cached *connection.CachedToken, resp *http.Response) {
	expiresAt, renewed := connection.Renewal(resp)
	if !renewed {
		return
	}
	cached.ExpiresAt = expiresAt
	if err := connection.SaveToken(path, cached); err != nil {
		PrintError("update token cache: %v", err)
	}
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
