package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Napageneral/chat/internal/chatdb"
	"github.com/Napageneral/chat/internal/config"
	"github.com/Napageneral/chat/internal/format"
)

// fileOpener is the system open capability; faked in tests.
type fileOpener interface {
	Open(ctx context.Context, path string) error
}

type systemOpener struct{}

func (systemOpener) Open(ctx context.Context, path string) error {
	out, err := exec.CommandContext(ctx, "open", path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to open file: %s (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func newOpenCmd() *cobra.Command {
	var list bool
	var index int

	cmd := &cobra.Command{
		Use:   "open <message-id>",
		Short: "Open an attachment file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid message id %q", args[0])
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return runOpen(cmd, store, systemOpener{}, messageID, list, index)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List attachments without opening")
	cmd.Flags().IntVarP(&index, "attachment", "a", 1, "Open specific attachment (1-based index)")
	return cmd
}

func runOpen(cmd *cobra.Command, store *chatdb.Store, opener fileOpener, messageID int64, list bool, index int) error {
	attachments, err := store.Attachments(messageID)
	if err != nil {
		return err
	}
	if len(attachments) == 0 {
		fmt.Printf("No attachments found for message %d\n", messageID)
		return nil
	}

	if list {
		fmt.Printf("Attachments for message %d:\n\n", messageID)
		for i, a := range attachments {
			path := "(no path)"
			if a.Filename.Valid {
				path = expandHome(a.Filename.String)
			}
			mimeType := "unknown"
			if a.MimeType.Valid {
				mimeType = a.MimeType.String
			}
			fmt.Printf("  %d. %s\n", i+1, format.AttachmentName(a))
			fmt.Printf("     Type: %s\n", mimeType)
			fmt.Printf("     Size: %d bytes\n", a.TotalBytes)
			fmt.Printf("     Path: %s\n\n", format.Dim(path))
		}
		return nil
	}

	attachment, err := pickAttachment(attachments, index)
	if err != nil {
		fmt.Fprintln(os.Stderr, format.Red(err.Error()))
		return nil
	}

	path := expandHome(attachment.Filename.String)
	fmt.Println(format.Dim("Opening: " + path))
	if err := opener.Open(cmd.Context(), path); err != nil {
		fmt.Fprintln(os.Stderr, format.Red(err.Error()))
	}
	return nil
}

// pickAttachment validates a 1-based index and requires a stored path.
func pickAttachment(attachments []chatdb.AttachmentRow, index int) (chatdb.AttachmentRow, error) {
	if index < 1 || index > len(attachments) {
		return chatdb.AttachmentRow{}, fmt.Errorf("invalid attachment index. Message has %d attachment(s)", len(attachments))
	}
	a := attachments[index-1]
	if !a.Filename.Valid || a.Filename.String == "" {
		return chatdb.AttachmentRow{}, fmt.Errorf("attachment has no file path")
	}
	return a, nil
}

// expandHome resolves the "~" shorthand chat.db uses in stored
// attachment paths.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + strings.TrimPrefix(path, "~")
}
