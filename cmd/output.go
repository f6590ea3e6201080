package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

type validationOutput struct {
	Valid  bool           `json:"valid"`
	Kind   string         `json:"kind,omitempty"`
	Error  string         `json:"error,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Claims map[string]any `json:"claims,omitempty"`
}

func resultKind(res *validation.Result) string {
	if res.JWT != "" {
		return "jwt"
	}
	return "reference"
}

// printResult renders a validation result. The internal rejection reason is
// shown because the output only reaches the operator.
func printResult(w io.Writer, res *validation.Result, asJSON bool) error {
	if asJSON {
		out := validationOutput{Valid: !res.IsError}
		if res.IsError {
			out.Error = string(res.Error)
			out.Reason = string(res.Reason())
		} else {
			out.Kind = resultKind(res)
			out.Claims = models.ClaimsToMap(res.Claims)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if res.IsError {
		errorColor.Fprintf(w, "✗ %s", res.Error)
		dimColor.Fprintf(w, " (%s)\n", res.Reason())
		return nil
	}

	successColor.Fprintf(w, "✓ valid %s access token\n", resultKind(res))
	printField(w, "Client", res.Client.ClientID)
	if sub := res.Subject(); sub != "" {
		printField(w, "Subject", sub)
	}
	printField(w, "Scopes", strings.Join(res.Scopes(), " "))
	if exp, ok := res.ClaimValue(models.ClaimExpiration); ok {
		printField(w, "Expires", formatUnix(exp))
	}

	fmt.Fprintln(w)
	headerColor.Fprintln(w, "Claims")
	claims := append([]models.Claim(nil), res.Claims...)
	sort.SliceStable(claims, func(i, j int) bool { return claims[i].Type < claims[j].Type })
	for _, c := range claims {
		labelColor.Fprintf(w, "  %s: ", c.Type)
		fmt.Fprintln(w, c.Value)
	}
	return nil
}

func printField(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "%-8s ", label+":")
	fmt.Fprintln(w, value)
}

// formatUnix renders a NumericDate claim, falling back to the raw value.
func formatUnix(v string) string {
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return v
	}
	return time.Unix(secs, 0).UTC().Format(time.RFC3339)
}
