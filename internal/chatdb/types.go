// Package chatdb provides direct read-only access to Apple's iMessage chat.db.
package chatdb

import "database/sql"

// MessageRow is a raw message row from chat.db, joined with its handle
// and chat. Lifecycle timestamps arrive pre-formatted as localized
// datetime strings (the query converts Apple nanoseconds in SQL).
type MessageRow struct {
	ROWID                 int64
	GUID                  string
	Text                  sql.NullString
	Date                  sql.NullString
	DateRead              sql.NullString
	DateDelivered         sql.NullString
	DateEdited            sql.NullString
	DateRetracted         sql.NullString
	IsFromMe              bool
	IsRead                bool
	IsDelivered           bool
	IsSent                bool
	Service               sql.NullString
	IsAudioMessage        bool
	ReplyToGUID           sql.NullString
	ThreadOriginatorGUID  sql.NullString
	AssociatedMessageGUID sql.NullString
	AssociatedMessageType int64
	ExpressiveSendStyleID sql.NullString
	Subject               sql.NullString
	CacheHasAttachments   bool
	Handle                sql.NullString
	HandleService         sql.NullString
	ChatName              sql.NullString
	ChatIdentifier        sql.NullString
}

// AttachmentRow is a raw attachment row from chat.db.
type AttachmentRow struct {
	ROWID        int64
	Filename     sql.NullString
	MimeType     sql.NullString
	TotalBytes   int64
	TransferName sql.NullString
	UTI          sql.NullString
	IsSticker    bool
}

// HandleRow is a raw handle row from chat.db.
type HandleRow struct {
	ROWID   int64
	ID      string
	Service string
}

// Tapback describes a legacy reaction type code.
type Tapback struct {
	Emoji  string
	Action string
}

// TapbackTypes maps associated_message_type codes to reactions.
// Remove reactions (3000-3005) just remove the corresponding 2000-2005.
var TapbackTypes = map[int64]Tapback{
	2000: {Emoji: "❤️", Action: "loved"},
	2001: {Emoji: "👍", Action: "liked"},
	2002: {Emoji: "👎", Action: "disliked"},
	2003: {Emoji: "😂", Action: "laughed at"},
	2004: {Emoji: "‼️", Action: "emphasized"},
	2005: {Emoji: "❓", Action: "questioned"},
}

// ExpressiveStyles maps expressive_send_style_id to display names.
var ExpressiveStyles = map[string]string{
	"com.apple.MobileSMS.expressivesend.impact":       "Slam",
	"com.apple.MobileSMS.expressivesend.loud":         "Loud",
	"com.apple.MobileSMS.expressivesend.gentle":       "Gentle",
	"com.apple.MobileSMS.expressivesend.invisibleink": "Invisible Ink",
}

// IsTapback reports whether an associated_message_type code denotes a
// reaction (as opposed to a normal message, reply, or edit).
func IsTapback(associatedMessageType int64) bool {
	return associatedMessageType >= 2000 && associatedMessageType < 4000
}
