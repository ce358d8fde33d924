package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Napageneral/chat/internal/config"
	"github.com/Napageneral/chat/internal/contacts"
	"github.com/Napageneral/chat/internal/format"
	"github.com/Napageneral/chat/internal/send"
)

func newSendCmd() *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "send <recipient> <message>",
		Short: "Send a message via iMessage/SMS",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("service") && cfg.Service != "" {
				service = cfg.Service
			}
			resolver := contacts.NewResolver(contacts.NewContactsApp())
			return runSend(cmd, resolver, send.NewMessages(), args[0], args[1], service)
		},
	}

	cmd.Flags().StringVar(&service, "service", "iMessage", "Force service (iMessage or SMS)")
	return cmd
}

func runSend(cmd *cobra.Command, resolver *contacts.Resolver, sender send.Sender, recipient, text, service string) error {
	ctx := cmd.Context()

	identifier := recipient
	// Unlike list, an unresolvable recipient name is a hard failure:
	// there is nothing sensible to send to.
	if !contacts.IsPhone(recipient) && !contacts.IsEmail(recipient) {
		fmt.Println(format.Dim(fmt.Sprintf("Looking up %q in Contacts...", recipient)))
		identifier = resolver.ResolveIdentifier(ctx, recipient)
		if identifier == "" {
			return fmt.Errorf("could not find contact %q in Contacts.app", recipient)
		}
		fmt.Println(format.Dim("Found: " + identifier))
	}

	if err := sender.Send(ctx, identifier, text, service); err != nil {
		fmt.Fprintln(os.Stderr, format.Dim("\nMake sure:"))
		fmt.Fprintln(os.Stderr, format.Dim("  1. Messages.app is signed in"))
		fmt.Fprintln(os.Stderr, format.Dim("  2. The recipient is a valid iMessage/SMS contact"))
		fmt.Fprintln(os.Stderr, format.Dim("  3. Terminal has permission to control Messages.app"))
		return err
	}

	fmt.Println(format.Green("✓ Message sent to " + identifier))
	return nil
}
