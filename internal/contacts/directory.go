// Package contacts resolves chat.db handles to display names (and
// back) via the macOS address book.
package contacts

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Napageneral/chat/internal/applescript"
)

// Directory is the address-book capability. Lookups return "" when no
// match exists; callers treat errors the same as no match.
type Directory interface {
	LookupByPhone(ctx context.Context, phone string) (string, error)
	LookupByEmail(ctx context.Context, email string) (string, error)
	// LookupByName returns the first phone number of the first matching
	// person, falling back to their first email.
	LookupByName(ctx context.Context, name string) (string, error)
}

var phonePattern = regexp.MustCompile(`^[\d+\-() ]+$`)

// IsPhone reports whether an identifier looks like a phone number.
func IsPhone(identifier string) bool {
	return phonePattern.MatchString(identifier)
}

// IsEmail reports whether an identifier looks like an email address.
func IsEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// ContactsApp is the real Directory backed by Contacts.app.
type ContactsApp struct {
	Runner applescript.Runner
}

// NewContactsApp returns a Directory that shells out to osascript.
func NewContactsApp() *ContactsApp {
	return &ContactsApp{Runner: applescript.Osascript{}}
}

const lookupByValueScript = `tell application "Contacts"
	set matchingPeople to (every person whose value of %s contains "%s")
	if (count of matchingPeople) > 0 then
		return name of item 1 of matchingPeople
	end if
	return ""
end tell`

const lookupByNameScript = `tell application "Contacts"
	set matchingPeople to (every person whose name contains "%s")
	if (count of matchingPeople) > 0 then
		set p to item 1 of matchingPeople
		if (count of phones of p) > 0 then
			return value of item 1 of phones of p
		end if
		if (count of emails of p) > 0 then
			return value of item 1 of emails of p
		end if
	end if
	return ""
end tell`

func (c *ContactsApp) LookupByPhone(ctx context.Context, phone string) (string, error) {
	return c.run(ctx, fmt.Sprintf(lookupByValueScript, "phones", applescript.Escape(phone)))
}

func (c *ContactsApp) LookupByEmail(ctx context.Context, email string) (string, error) {
	return c.run(ctx, fmt.Sprintf(lookupByValueScript, "emails", applescript.Escape(email)))
}

func (c *ContactsApp) LookupByName(ctx context.Context, name string) (string, error) {
	return c.run(ctx, fmt.Sprintf(lookupByNameScript, applescript.Escape(name)))
}

func (c *ContactsApp) run(ctx context.Context, script string) (string, error) {
	out, err := c.Runner.Run(ctx, script)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
