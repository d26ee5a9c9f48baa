package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	userDomain "github.com/tradeport/keyvault/internal/user/domain"
	userUseCase "github.com/tradeport/keyvault/internal/user/usecase"
)

// RunCreateUser registers a new user account from the command line. Outputs
// the user ID and email in either text or JSON format. The password is
// validated against the same strength policy as the registration endpoint.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	users userUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", email))

	user, err := users.Register(ctx, userUseCase.RegisterUserInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputUserJSON(user, writer)
	} else {
		outputUserText(user, writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]string{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
