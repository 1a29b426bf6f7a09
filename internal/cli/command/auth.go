// Package command provides CLI command definitions for authgate-cli.
package command

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/authgate-io/authgate/internal/cli/connection"
)

// LoginCommand authenticates against the server and caches the token.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and cache a bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "Username",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password (falls back to AUTHGATE_PASSWORD)",
				EnvVars: []string{"AUTHGATE_PASSWORD"},
			},
		},
		Action: runLogin,
	}
}

func runLogin(c *cli.Context) error {
	username := c.String("username")
	password := c.String("password")
	if password == "" {
		return fmt.Errorf("password required, use --password or AUTHGATE_PASSWORD")
	}

	client := connection.NewHTTPClient(c.String("server"), "")
	resp, err := client.Call(c.Context, http.MethodPost, "login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}

	var res struct {
		Token     string   `json:"token"`
		ExpiresAt int64    `json:"expiresAt"`
		Roles     []string `json:"roles"`
	}
	if err := connection.ParseResponse(resp, &res); err != nil {
		return err
	}

	path, err := cachePath(c)
	if err != nil {
		return err
	}
	if err := connection.SaveToken(path, &connection.CachedToken{
		Server:    client.BaseURL(),
		Username:  username,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Roles:     res.Roles,
	}); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "logged in as %s (roles: %s), token valid until %s\n",
		username,
		strings.Join(res.Roles, ", "),
		time.Unix(res.ExpiresAt, 0).Format(time.RFC3339),
	)
	return nil
}

// LogoutCommand discards the cached token.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Discard the cached bearer token",
		Action: func(c *cli.Context) error {
			path, err := cachePath(c)
			if err != nil {
				return err
			}
			if err := connection.ClearToken(path); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "logged out")
			return nil
		},
	}
}

// WhoamiCommand shows the identity behind the cached token.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the authenticated user and roles",
		Action: runWhoami,
	}
}

func runWhoami(c *cli.Context) error {
	client, cached, path, err := authenticatedClient(c)
	if err != nil {
		return err
	}

	resp, err := client.Call(c.Context, http.MethodGet, "example", nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	syncRenewal(path, cached, resp)

	var res struct {
		User  string   `json:"user"`
		Roles []string `json:"roles"`
	}
	if err := connection.ParseResponse(resp, &res); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s (roles: %s)\n", res.User, strings.Join(res.Roles, ", "))
	return nil
}

// CallCommand performs a raw API call with the cached token.
func CallCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Call an API endpoint",
		ArgsUsage: "<endpoint>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"X"},
				Usage:   "HTTP method",
				Value:   http.MethodGet,
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "JSON request body",
			},
		},
		Action: runCall,
	}
}

func runCall(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: call <endpoint>")
	}
	endpoint := c.Args().First()

	var body any
	if data := c.String("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return fmt.Errorf("parse --data: %w", err)
		}
	}

	client, cached, path, err := authenticatedClient(c)
	if err != nil {
		return err
	}

	resp, err := client.Call(c.Context, strings.ToUpper(c.String("method")), endpoint, body)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	syncRenewal(path, cached, resp)

	var result map[string]any
	if err := connection.ParseResponse(resp, &result); err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}
