package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-authgate/tokenguard/internal/bootstrap"
	"github.com/go-authgate/tokenguard/internal/models"

	"github.com/spf13/cobra"
)

type clientListOutput struct {
	Clients []clientOutput `json:"clients"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
}

type clientOutput struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name,omitempty"`
	Scopes   string `json:"scopes,omitempty"`
	Active   bool   `json:"active"`
}

func newClientCmd(global *globalOptions) *cobra.Command {
	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "List, enable or disable registered clients",
		Long: `Manage the clients tokens are checked against.

A running server caches client lookups for CLIENT_CACHE_TTL, so a client
disabled here may still be accepted there until its cached copy expires.
SEED_FILE is applied on every start and restores the state it declares.`,
	}

	clientCmd.AddCommand(
		newClientListCmd(global),
		newClientToggleCmd(global, "enable", "Accept tokens issued to a client", true),
		newClientToggleCmd(global, "disable", "Reject tokens issued to a client", false),
	)
	return clientCmd
}

func newClientListCmd(global *globalOptions) *cobra.Command {
	var page, pageSize int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tk, err := bootstrap.NewToolkit(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer tk.Close()

			clients, total, err := tk.Clients.ListClients(cmd.Context(), page, pageSize)
			if err != nil {
				return fmt.Errorf("list clients: %w", err)
			}
			return printClients(cmd.OutOrStdout(), clients, total, max(page, 1), global.jsonOutput)
		},
	}

	listCmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&pageSize, "page-size", 20, "Clients per page (at most 100)")
	return listCmd
}

func newClientToggleCmd(global *globalOptions, verb, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <client_id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tk, err := bootstrap.NewToolkit(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer tk.Close()

			clientID := args[0]
			if err := tk.Clients.SetActive(cmd.Context(), clientID, active); err != nil {
				return fmt.Errorf("%s client %s: %w", verb, clientID, err)
			}

			w := cmd.OutOrStdout()
			if global.jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(clientOutput{ClientID: clientID, Active: active})
			}
			successColor.Fprintf(w, "✓ %sd %s\n", verb, clientID)
			return nil
		},
	}
}

func printClients(w io.Writer, clients []models.Client, total int64, page int, asJSON bool) error {
	if asJSON {
		out := clientListOutput{Clients: make([]clientOutput, 0, len(clients)), Total: total, Page: page}
		for _, c := range clients {
			out.Clients = append(out.Clients, clientOutput{
				ClientID: c.ClientID,
				Name:     c.ClientName,
				Scopes:   c.Scopes,
				Active:   c.IsActive,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	headerColor.Fprintf(w, "Clients (%d total, page %d)\n", total, page)
	for _, c := range clients {
		if c.IsActive {
			successColor.Fprint(w, "  ● ")
		} else {
			errorColor.Fprint(w, "  ○ ")
		}
		fmt.Fprint(w, c.ClientID)
		if c.ClientName != "" {
			dimColor.Fprintf(w, "  %s", c.ClientName)
		}
		fmt.Fprintln(w)
	}
	return nil
}
