package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// A successful registration also logs the session in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, name, email, password); err != nil {
		_, msg := a.session.Status()
		printlnFn(color.RedString("Registration failed: %s", msg))
		return err
	}

	printlnFn(color.GreenString("Welcome, %s!", name))
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		_, msg := a.session.Status()
		printlnFn(color.RedString("Login failed: %s", msg))
		return err
	}

	printlnFn(color.GreenString("Logged in."))
	return nil
}

// Logout clears the session. The session subscriber in NewApp takes care
// of dropping document focus and notes.
func (a *App) Logout(ctx context.Context) error {
	a.session.Clear()
	printlnFn("Logged out.")
	return nil
}
