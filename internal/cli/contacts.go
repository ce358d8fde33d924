package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Napageneral/chat/internal/config"
	"github.com/Napageneral/chat/internal/contacts"
	"github.com/Napageneral/chat/internal/format"
)

func newContactsCmd() *cobra.Command {
	var jsonOut bool
	var noResolve bool

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List all contacts from message history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			handles, err := store.Handles()
			if err != nil {
				return err
			}
			if len(handles) == 0 {
				fmt.Println("No contacts found in message history.")
				return nil
			}

			nameMap := map[string]string{}
			if !noResolve && !cfg.NoResolve {
				fmt.Printf("Resolving %d contacts from Contacts.app...\n", len(handles))
				resolver := contacts.NewResolver(contacts.NewContactsApp())
				identifiers := make([]string, 0, len(handles))
				for _, h := range handles {
					identifiers = append(identifiers, h.ID)
				}
				nameMap = resolver.ResolveNames(cmd.Context(), identifiers)
			}

			if jsonOut {
				type contactRecord struct {
					ID      string  `json:"id"`
					Service string  `json:"service"`
					Name    *string `json:"name"`
				}
				out := make([]contactRecord, 0, len(handles))
				for _, h := range handles {
					rec := contactRecord{ID: h.ID, Service: h.Service}
					if name := nameMap[h.ID]; name != "" {
						rec.Name = &name
					}
					out = append(out, rec)
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, h := range handles {
				fmt.Println(format.FormatContact(h.ID, h.Service, nameMap[h.ID]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noResolve, "no-resolve", false, "Skip contact name resolution (faster)")
	return cmd
}
