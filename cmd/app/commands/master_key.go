package commands

import (
	"fmt"
	"io"

	cryptoDomain "github.com/tradeport/keyvault/internal/crypto/domain"
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// and prints it as the MASTER_ENCRYPTION_KEY environment variable. The raw key
// material is zeroed from memory after encoding.
//
// Every stored credential is sealed under this key: losing it makes existing
// records unrecoverable, and leaking it exposes all of them. Store the value
// in a secrets manager, not in source control.
func RunCreateMasterKey(writer io.Writer) error {
	encoded, err := cryptoDomain.GenerateMasterKey()
	if err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "%s=\"%s\"\n", cryptoDomain.MasterKeyEnvVar, encoded)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# IMPORTANT: losing this key makes all stored credentials unrecoverable.")

	return nil
}
