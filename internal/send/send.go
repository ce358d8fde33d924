// Package send delivers outgoing messages through Messages.app.
package send

import (
	"context"
	"fmt"

	"github.com/Napageneral/chat/internal/applescript"
)

// Sender is the outgoing-message capability. Implemented by Messages
// for real use and by fakes in tests.
type Sender interface {
	Send(ctx context.Context, recipient, text, service string) error
}

// Messages sends via Messages.app AppleScript. A simple one-line send
// is tried first; on failure the explicit account/participant form is
// attempted before the error surfaces.
type Messages struct {
	Runner applescript.Runner
}

// NewMessages returns a Sender backed by osascript.
func NewMessages() *Messages {
	return &Messages{Runner: applescript.Osascript{}}
}

func (m *Messages) Send(ctx context.Context, recipient, text, service string) error {
	escText := applescript.Escape(text)
	escRecipient := applescript.Escape(recipient)

	simple := fmt.Sprintf(`tell application "Messages" to send "%s" to buddy "%s"`, escText, escRecipient)
	if _, err := m.Runner.Run(ctx, simple); err == nil {
		return nil
	}

	serviceType := "iMessage"
	if service == "SMS" {
		serviceType = "SMS"
	}
	explicit := fmt.Sprintf(`tell application "Messages"
	set targetService to 1st account whose service type = %s
	set targetBuddy to participant "%s" of targetService
	send "%s" to targetBuddy
end tell`, serviceType, escRecipient, escText)

	if _, err := m.Runner.Run(ctx, explicit); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
