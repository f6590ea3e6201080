package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-authgate/tokenguard/internal/bootstrap"
	"github.com/go-authgate/tokenguard/internal/token"

	"github.com/spf13/cobra"
)

// ErrTokenRejected makes the validate command exit non-zero for a rejected token.
var ErrTokenRejected = errors.New("token rejected")

func newValidateCmd(global *globalOptions) *cobra.Command {
	var scope string

	validateCmd := &cobra.Command{
		Use:   "validate [token]",
		Short: "Validate an access token against the configured stores",
		Long: `Validate a JWT or reference token exactly as the validation endpoint would.
The token is read from stdin when no argument (or "-") is given.

Reference tokens are resolved in REFERENCE_TOKEN_STORE, so the memory store
only knows tokens minted by the same process; use database, redis or rueidis.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readTokenArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
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

			res, err := tk.Validator.ValidateAccessToken(cmd.Context(), raw, scope)
			if err != nil {
				return err
			}
			if err := printResult(cmd.OutOrStdout(), res, global.jsonOutput); err != nil {
				return err
			}
			if res.IsError && !global.jsonOutput {
				printMalformedHint(cmd.ErrOrStderr(), raw)
			}
			if res.IsError {
				return fmt.Errorf("%w: %s", ErrTokenRejected, res.Error)
			}
			return nil
		},
	}

	validateCmd.Flags().StringVar(&scope, "scope", "", "Scope the token must carry")
	return validateCmd
}

// printMalformedHint explains a rejection of input that was routed to JWT
// validation only because it contains a dot.
func printMalformedHint(w io.Writer, raw string) {
	if token.Classify(raw) != token.KindSelfContained || token.LooksLikeJWT(raw) {
		return
	}
	dimColor.Fprintln(w, "hint: the token contains '.' so it was checked as a JWT, "+
		"but it is not a well-formed compact JWS; reference handles never contain '.'")
}

// readTokenArg returns the token argument or the first line of stdin.
func readTokenArg(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
