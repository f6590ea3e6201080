package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-authgate/tokenguard/internal/bootstrap"

	"github.com/spf13/cobra"
)

type revokeOutput struct {
	Revoked string `json:"revoked"`
}

func newRevokeCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [handle]",
		Short: "Revoke a reference token",
		Long: `Remove a reference token handle from REFERENCE_TOKEN_STORE. Later
validations of the handle fail as unknown. Revoking an unknown handle succeeds.
The handle is read from stdin when no argument (or "-") is given.

Self-contained (JWT) tokens cannot be revoked; they stay valid until they expire.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := readTokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if handle == "" {
				return errors.New("a reference token handle is required")
			}

			cfg, logger, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tk, err := bootstrap.NewToolkit(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer tk.Close()

			if err := tk.References.RevokeToken(cmd.Context(), handle); err != nil {
				return fmt.Errorf("revoke reference token: %w", err)
			}

			w := cmd.OutOrStdout()
			if global.jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(revokeOutput{Revoked: handle})
			}
			successColor.Fprintf(w, "✓ revoked %s\n", handle)
			return nil
		},
	}
}
