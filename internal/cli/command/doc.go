// Package command provides CLI command definitions for authgate-cli.
//
// It uses urfave/cli/v2 for command parsing. The login command caches
// the issued token on disk; subsequent commands present it and keep the
// cache in sync when the server renews the token.
package command
