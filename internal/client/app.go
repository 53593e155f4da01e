package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/MKhiriev/go-file-keeper/internal/adapter"
	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

type command struct {
	usage string
	// authed commands load the saved token before running
	authed bool
	run    func(ctx context.Context, args []string) error
}

type App struct {
	server    adapter.ServerAdapter
	tokens    TokenStore
	buildInfo models.AppBuildInfo

	stdin  io.Reader
	stdout io.Writer

	commands map[string]command

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	server, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating server adapter: %w", err)
	}

	return newApp(server, NewFileTokenStore(cfg.Adapter.TokenFile), buildInfo, os.Stdin, os.Stdout, logger), nil
}

func newApp(server adapter.ServerAdapter, tokens TokenStore, buildInfo models.AppBuildInfo, stdin io.Reader, stdout io.Writer, logger *logger.Logger) *App {
	a := &App{
		server:    server,
		tokens:    tokens,
		buildInfo: buildInfo,
		stdin:     stdin,
		stdout:    stdout,
		logger:    logger,
	}

	a.commands = map[string]command{
		"register":       {usage: "register -username NAME -email EMAIL [-password PASSWORD]", run: a.register},
		"login":          {usage: "login -username NAME [-password PASSWORD]", run: a.login},
		"logout":         {usage: "logout", run: a.logout},
		"reset-password": {usage: "reset-password -email EMAIL [-password NEW_PASSWORD]", run: a.resetPassword},
		"upload":         {usage: "upload [-name NAME] PATH", authed: true, run: a.upload},
		"list":           {usage: "list", authed: true, run: a.list},
		"download":       {usage: "download [-o PATH] FILE_ID", authed: true, run: a.download},
		"delete":         {usage: "delete FILE_ID", authed: true, run: a.delete},
		"version":        {usage: "version", run: a.version},
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.printUsage()
		if len(args) == 0 {
			return fmt.Errorf("%w: command", ErrMissingArgument)
		}
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	if cmd.authed {
		token, err := a.tokens.Load()
		if err != nil {
			return err
		}
		if token == "" {
			return ErrNotLoggedIn
		}
		a.server.SetToken(token)
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.stdout, "usage: client <command> [flags]")
	fmt.Fprintln(a.stdout, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  %s\n", a.commands[name].usage)
	}
}
