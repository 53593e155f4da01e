// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/MKhiriev/go-file-keeper/internal/app"
	"github.com/MKhiriev/go-file-keeper/models"
)

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stdout)
	return fs
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	username := fs.String("username", "", "account name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return fmt.Errorf("%w: -username and -email are required", ErrMissingArgument)
	}

	if *password == "" {
		secret, err := a.readSecret("Password: ")
		if err != nil {
			return err
		}
		*password = secret
	}

	token, err := a.server.Register(ctx, models.RegisterRequest{Username: *username, Email: *email, Password: *password})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return a.saveToken(token, app.MsgRegistered)
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "account password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("%w: -username is required", ErrMissingArgument)
	}

	if *password == "" {
		secret, err := a.readSecret("Password: ")
		if err != nil {
			return err
		}
		*password = secret
	}

	token, err := a.server.Login(ctx, models.LoginRequest{Username: *username, Password: *password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	return a.saveToken(token, app.MsgLoginSuccessful)
}

func (a *App) saveToken(token, message string) error {
	if err := a.tokens.Save(token); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, message)
	fmt.Fprintln(a.stdout, app.MsgTokenSaved)
	return nil
}

// logout only forgets the local token; issued tokens stay valid until they
// expire.
func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, app.MsgLoggedOut)
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	fs := a.newFlagSet("reset-password")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "new password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("%w: -email is required", ErrMissingArgument)
	}

	if *password == "" {
		secret, err := a.readSecret("New password: ")
		if err != nil {
			return err
		}
		*password = secret
	}

	if err := a.server.ResetPassword(ctx, models.ResetPasswordRequest{Email: *email, NewPassword: *password}); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(a.stdout, app.MsgPasswordReset)
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := a.newFlagSet("upload")
	name := fs.String("name", "", "file name stored on the server (defaults to the base name of PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: PATH", ErrMissingArgument)
	}

	path := fs.Arg(0)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	if *name == "" {
		*name = filepath.Base(path)
	}

	fileID, err := a.server.Upload(ctx, *name, file)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	fmt.Fprintf(a.stdout, "%s (id %d)\n", app.MsgFileUploaded, fileID)
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	files, err := a.server.List(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(a.stdout, app.MsgNoFilesUploadedYet)
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\n", f.FileID, f.FileName)
	}
	return tw.Flush()
}

// download streams the file into a temporary file next to the destination
// and renames it into place once the transfer completed.
func (a *App) download(ctx context.Context, args []string) error {
	fs := a.newFlagSet("download")
	output := fs.String("o", "", "output path (defaults to the stored file name in the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fileID, err := parseFileIDArg(fs)
	if err != nil {
		return err
	}

	dir := "."
	if *output != "" {
		dir = filepath.Dir(*output)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	serverName, err := a.server.Download(ctx, fileID, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}

	target := *output
	if target == "" {
		target = localFileName(serverName, fileID)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	fmt.Fprintf(a.stdout, "Saved %s\n", target)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fileID, err := parseFileIDArg(fs)
	if err != nil {
		return err
	}

	if err = a.server.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	fmt.Fprintln(a.stdout, app.MsgFileDeleted)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	fmt.Fprint(a.stdout, a.buildInfo.String())

	serverVersion, err := a.server.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	fmt.Fprintf(a.stdout, "Server version: %s\n", serverVersion)
	return nil
}

func parseFileIDArg(fs *flag.FlagSet) (int64, error) {
	if fs.NArg() != 1 {
		return 0, fmt.Errorf("%w: FILE_ID", ErrMissingArgument)
	}

	fileID, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || fileID <= 0 {
		return 0, fmt.Errorf("%w: FILE_ID must be a positive number", ErrInvalidArgument)
	}
	return fileID, nil
}

// localFileName keeps only the base of a server supplied name so a download
// never writes outside the current directory.
func localFileName(serverName string, fileID int64) string {
	name := filepath.Base(serverName)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "file-" + strconv.FormatInt(fileID, 10)
	}
	return name
}
