// Package cli implements the maintenance subcommands of the habitfeed binary.
package cli

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/services"
	"golang.org/x/term"
)

const (
	temporaryPasswordLength   = 12
	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

type PasswordResetter interface {
	ResetPassword(email string, password string) (models.User, error)
}

// passwordSource asks the operator for a new password. A nil source means a temporary
// password is generated instead.
type passwordSource func() (string, error)

// RunResetPassword prompts for the new password when stdin is a terminal and otherwise
// generates a temporary one and prints it.
func RunResetPassword(resetter PasswordResetter, email string, stdin *os.File, out io.Writer) error {
	var source passwordSource
	if stdin != nil && term.IsTerminal(int(stdin.Fd())) {
		source = terminalPassword(stdin, out)
	}
	return resetPassword(resetter, email, source, out)
}

func resetPassword(resetter PasswordResetter, email string, source passwordSource, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	generated := source == nil
	var password string
	var err error
	if generated {
		password, err = generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	} else {
		password, err = source()
		if err != nil {
			return err
		}
	}

	if _, err := resetter.ResetPassword(normalizedEmail, password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", normalizedEmail)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

func terminalPassword(stdin *os.File, out io.Writer) passwordSource {
	return func() (string, error) {
		fd := int(stdin.Fd())
		fmt.Fprint(out, "New password: ")
		first, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		fmt.Fprint(out, "Repeat password: ")
		second, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		password := strings.TrimSpace(string(first))
		if password == "" {
			return "", errors.New("password must not be empty")
		}
		if password != strings.TrimSpace(string(second)) {
			return "", services.ErrPasswordMismatch
		}
		return password, nil
	}
}

// generateTemporaryPassword draws uniformly from an alphabet without look-alike characters.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	limit := big.NewInt(int64(len(temporaryPasswordAlphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = temporaryPasswordAlphabet[position.Int64()]
	}
	return string(value), nil
}
