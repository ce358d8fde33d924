// Package format renders chat.db rows for humans and for JSON output.
package format

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/Napageneral/chat/internal/chatdb"
)

// Message is a message row enriched with its resolved contact name and
// attachment rows, ready to render.
type Message struct {
	Row         chatdb.MessageRow
	ContactName string
	Attachments []chatdb.AttachmentRow
}

// Options control human-readable rendering.
type Options struct {
	Verbose bool
	ShowID  bool
}

// FormatMessage renders a single message as one or more lines.
func FormatMessage(msg Message, opts Options) string {
	row := msg.Row
	var lines []string

	direction := themStyle.Render("←")
	if row.IsFromMe {
		direction = meStyle.Render("→")
	}

	contact := msg.ContactName
	if contact == "" {
		contact = row.Handle.String
	}
	if contact == "" {
		contact = "Unknown"
	}
	sender := themStyle.Render(contact)
	if row.IsFromMe {
		sender = meStyle.Render("Me")
	}

	date := dateStyle.Render(row.Date.String)

	readIndicator := ""
	if !row.IsFromMe && !row.IsRead {
		readIndicator = unreadStyle.Render("●")
	}

	service := ""
	if opts.Verbose {
		service = " " + serviceBadge(row.Service.String)
	}

	// The id is how attachments get opened, so surface it whenever any
	// exist.
	idPrefix := ""
	if opts.ShowID || len(msg.Attachments) > 0 {
		idPrefix = dimStyle.Render(fmt.Sprintf("[%d] ", row.ROWID))
	}

	line1 := fmt.Sprintf("%s%s%s  %s %s", idPrefix, readIndicator, date, sender, direction)
	if row.IsFromMe && msg.ContactName != "" {
		line1 += " " + dimStyle.Render(contact)
	}
	line1 += service

	// Tapbacks render as a single condensed line; the carrier message
	// text is the reaction payload, not something to display.
	if chatdb.IsTapback(row.AssociatedMessageType) {
		if tb, ok := chatdb.TapbackTypes[row.AssociatedMessageType]; ok {
			return fmt.Sprintf("%s  %s %s", line1, tb.Emoji, tb.Action)
		}
	}

	lines = append(lines, line1)

	if row.Text.Valid && row.Text.String != "" {
		text := row.Text.String
		if row.DateEdited.Valid {
			text += dimStyle.Render(" (edited)")
		}
		// Retraction wins over the edited marker.
		if row.DateRetracted.Valid {
			text = retractStyle.Render("Message unsent")
		}
		lines = append(lines, "  "+text)
	}

	if row.IsAudioMessage {
		lines = append(lines, "  🎤 "+dimStyle.Render("Voice message"))
	}

	if opts.Verbose && row.ExpressiveSendStyleID.Valid {
		if style, ok := chatdb.ExpressiveStyles[row.ExpressiveSendStyleID.String]; ok {
			lines = append(lines, "  "+dimStyle.Render("Sent with "+style+" effect"))
		}
	}

	for _, att := range msg.Attachments {
		icon := attachmentIcon(att.MimeType.String, att.IsSticker)
		name := AttachmentName(att)
		line := fmt.Sprintf("  %s %s", icon, fileStyle.Render(name))
		if att.TotalBytes > 0 {
			line += " " + dimStyle.Render("("+FormatBytes(att.TotalBytes)+")")
		}
		lines = append(lines, line)
	}

	if opts.Verbose && row.IsFromMe {
		if row.DateDelivered.Valid {
			lines = append(lines, "  "+dimStyle.Render("Delivered: "+row.DateDelivered.String))
		}
		if row.DateRead.Valid {
			lines = append(lines, "  "+dimStyle.Render("Read: "+row.DateRead.String))
		}
	}

	return strings.Join(lines, "\n")
}

func attachmentIcon(mimeType string, isSticker bool) string {
	switch {
	case isSticker:
		return "🏷️"
	case mimeType == "":
		return "📎"
	case strings.HasPrefix(mimeType, "image/"):
		return "📷"
	case strings.HasPrefix(mimeType, "video/"):
		return "🎥"
	case strings.HasPrefix(mimeType, "audio/"):
		return "🎵"
	case strings.Contains(mimeType, "pdf"):
		return "📄"
	default:
		return "📎"
	}
}

// AttachmentName picks a display name for an attachment: transfer name
// first, then the stored filename's base, then a generic fallback.
func AttachmentName(att chatdb.AttachmentRow) string {
	if att.TransferName.Valid && att.TransferName.String != "" {
		return att.TransferName.String
	}
	if att.Filename.Valid && att.Filename.String != "" {
		return path.Base(att.Filename.String)
	}
	return "attachment"
}

type jsonAttachment struct {
	Filename     *string `json:"filename"`
	MimeType     *string `json:"mimeType"`
	Size         int64   `json:"size"`
	OriginalName *string `json:"originalName"`
}

type jsonMessage struct {
	ID          int64            `json:"id"`
	GUID        string           `json:"guid"`
	Text        *string          `json:"text"`
	Date        *string          `json:"date"`
	IsFromMe    bool             `json:"isFromMe"`
	IsRead      bool             `json:"isRead"`
	Service     string           `json:"service"`
	Contact     *string          `json:"contact"`
	Handle      *string          `json:"handle"`
	ChatName    *string          `json:"chatName"`
	Attachments []jsonAttachment `json:"attachments"`
}

// MessagesJSON renders messages as an indented JSON array.
func MessagesJSON(messages []Message) (string, error) {
	out := make([]jsonMessage, 0, len(messages))
	for _, msg := range messages {
		row := msg.Row

		contact := nullableString(row.Handle)
		if msg.ContactName != "" {
			name := msg.ContactName
			contact = &name
		}

		atts := make([]jsonAttachment, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			atts = append(atts, jsonAttachment{
				Filename:     nullableString(a.Filename),
				MimeType:     nullableString(a.MimeType),
				Size:         a.TotalBytes,
				OriginalName: nullableString(a.TransferName),
			})
		}

		out = append(out, jsonMessage{
			ID:          row.ROWID,
			GUID:        row.GUID,
			Text:        nullableString(row.Text),
			Date:        nullableString(row.Date),
			IsFromMe:    row.IsFromMe,
			IsRead:      row.IsRead,
			Service:     row.Service.String,
			Contact:     contact,
			Handle:      nullableString(row.Handle),
			ChatName:    nullableString(row.ChatName),
			Attachments: atts,
		})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal messages: %w", err)
	}
	return string(b), nil
}

// FormatContact renders one line of the contacts listing.
func FormatContact(handle, service, name string) string {
	displayName := dimStyle.Render("(no name)")
	if name != "" {
		displayName = boldStyle.Render(name)
	}
	return fmt.Sprintf("%s  %s  %s", displayName, grayStyle.Render(handle), serviceBadge(service))
}

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a byte count with base-1024 units and at most one
// decimal place, trimming a trailing ".0".
func FormatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	s := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
	return s + " " + byteUnits[unit]
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
