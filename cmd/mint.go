package cmd

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-authgate/tokenguard/internal/bootstrap"
	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/reference"
	"github.com/go-authgate/tokenguard/internal/token"

	"github.com/spf13/cobra"
)

// ErrNoSigningKey is returned when a JWT is requested without key material.
var ErrNoSigningKey = errors.New("no signing key: set JWT_SECRET or JWT_PRIVATE_KEY_FILE")

type mintOptions struct {
	clientID  string
	subject   string
	scopes    []string
	claims    []string
	lifetime  time.Duration
	reference bool
	alg       string
}

type mintOutput struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func newMintCmd(global *globalOptions) *cobra.Command {
	opts := &mintOptions{}

	mintCmd := &cobra.Command{
		Use:   "mint",
		Short: "Issue a test access token",
		Long: `Issue an access token for local testing.

By default a JWT is signed with JWT_PRIVATE_KEY_FILE or JWT_SECRET and carries
TOKEN_ISSUER and TOKEN_AUDIENCE. With --reference the token record is stored in
REFERENCE_TOKEN_STORE and its handle is printed instead. Cache backed stores
(memory, redis, rueidis) refuse a --lifetime longer than
REFERENCE_TOKEN_CACHE_DURATION.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.clientID == "" {
				return errors.New("--client is required")
			}
			if opts.lifetime < time.Second {
				return errors.New("--lifetime must be at least one second")
			}
			extra, err := parseClaims(opts.claims)
			if err != nil {
				return err
			}

			cfg, logger, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tok := &models.Token{
				Type:     models.TokenTypeAccess,
				ClientID: opts.clientID,
				Subject:  opts.subject,
				Issuer:   cfg.TokenIssuer,
				Audience: cfg.TokenAudience,
				Lifetime: int(opts.lifetime / time.Second),
				Scopes:   opts.scopes,
				Claims:   extra,
			}

			var out mintOutput
			if opts.reference {
				out, err = mintReference(cmd.Context(), cfg, logger, tok)
			} else {
				out, err = mintJWT(cfg, opts.alg, tok)
			}
			if err != nil {
				return err
			}
			return printMinted(cmd.OutOrStdout(), out, global.jsonOutput)
		},
	}

	flags := mintCmd.Flags()
	flags.StringVar(&opts.clientID, "client", "", "client_id claim (required)")
	flags.StringVar(&opts.subject, "subject", "", "sub claim; omit for a client credentials token")
	flags.StringSliceVar(&opts.scopes, "scope", nil, "Granted scope (repeatable or comma separated)")
	flags.StringArrayVar(&opts.claims, "claim", nil, "Additional claim as type=value (repeatable)")
	flags.DurationVar(&opts.lifetime, "lifetime", time.Hour, "Token lifetime")
	flags.BoolVar(&opts.reference, "reference", false, "Store a reference token instead of signing a JWT")
	flags.StringVar(&opts.alg, "alg", "", "JWS algorithm (defaults from the key type)")
	return mintCmd
}

func parseClaims(raw []string) ([]models.Claim, error) {
	claims := make([]models.Claim, 0, len(raw))
	for _, kv := range raw {
		typ, value, ok := strings.Cut(kv, "=")
		if !ok || typ == "" {
			return nil, fmt.Errorf("invalid --claim %q: expected type=value", kv)
		}
		claims = append(claims, models.Claim{Type: typ, Value: value})
	}
	return claims, nil
}

func mintReference(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	tok *models.Token,
) (mintOutput, error) {
	if cfg.ReferenceTokenStore == config.ReferenceStoreMemory {
		logger.Warn("memory reference store: the token is lost when this command exits")
	}

	tk, err := bootstrap.NewToolkit(ctx, cfg, logger)
	if err != nil {
		return mintOutput{}, err
	}
	defer tk.Close()

	tok.CreationTime = tk.Clock.Now()
	handle := reference.NewHandle()
	if err := tk.References.StoreToken(ctx, handle, tok); err != nil {
		if errors.Is(err, reference.ErrLifetimeExceedsCache) {
			return mintOutput{}, fmt.Errorf(
				"store reference token: %w; lower --lifetime or raise REFERENCE_TOKEN_CACHE_DURATION",
				err,
			)
		}
		return mintOutput{}, fmt.Errorf("store reference token: %w", err)
	}
	return mintOutput{AccessToken: handle, TokenType: "reference", ExpiresAt: tok.ExpiresAt()}, nil
}

func mintJWT(cfg *config.Config, alg string, tok *models.Token) (mintOutput, error) {
	if cfg.TokenIssuer == "" || cfg.TokenAudience == "" {
		return mintOutput{}, fmt.Errorf(
			"%w: TOKEN_ISSUER and TOKEN_AUDIENCE are required to mint a JWT",
			config.ErrInvalidConfig,
		)
	}

	key, err := signingKey(cfg)
	if err != nil {
		return mintOutput{}, err
	}
	if alg == "" {
		alg = defaultAlgorithm(key)
	}
	signer, err := token.NewSigner(alg, key, cfg.JWTKeyID)
	if err != nil {
		return mintOutput{}, err
	}

	tok.CreationTime = time.Now()
	signed, err := signer.Sign(tok)
	if err != nil {
		return mintOutput{}, err
	}
	return mintOutput{AccessToken: signed, TokenType: "jwt", ExpiresAt: tok.ExpiresAt()}, nil
}

// signingKey prefers the private key file over the shared secret.
func signingKey(cfg *config.Config) (any, error) {
	if cfg.JWTPrivateKeyFile != "" {
		data, err := os.ReadFile(cfg.JWTPrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read JWT_PRIVATE_KEY_FILE: %w", err)
		}
		return token.ParsePrivateKeyPEM(data)
	}
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	return nil, ErrNoSigningKey
}

func defaultAlgorithm(key any) string {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return "RS256"
	case *ecdsa.PrivateKey:
		switch k.Curve.Params().BitSize {
		case 384:
			return "ES384"
		case 521:
			return "ES512"
		}
		return "ES256"
	case ed25519.PrivateKey:
		return "EdDSA"
	}
	return "HS256"
}

func printMinted(w io.Writer, out mintOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	_, err := fmt.Fprintln(w, out.AccessToken)
	return err
}
