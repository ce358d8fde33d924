// Package cli wires the chat subcommands together.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Napageneral/chat/internal/chatdb"
	"github.com/Napageneral/chat/internal/config"
)

// VersionInfo carries build metadata injected via ldflags.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCmd builds the chat command tree.
func NewRootCmd(info VersionInfo) *cobra.Command {
	root := &cobra.Command{
		Use:          "chat",
		Short:        "CLI for reading and sending iMessages",
		Long:         "Chat reads your local Messages history (chat.db), resolves\ncontact names via Contacts.app, and sends messages via Messages.app.",
		SilenceUsage: true,
	}

	root.AddCommand(newListCmd())
	root.AddCommand(newSendCmd())
	root.AddCommand(newContactsCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd(info))

	return root
}

func newVersionCmd(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chat %s (%s, %s)\n", info.Version, info.Commit, info.Date)
		},
	}
}

// openStore opens chat.db read-only, honoring the config override. The
// caller owns the returned store and must close it.
func openStore(cfg *config.Config) (*chatdb.Store, error) {
	path := cfg.ChatDB
	if path == "" {
		var err error
		path, err = chatdb.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return chatdb.Open(path)
}
