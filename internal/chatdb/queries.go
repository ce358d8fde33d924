package chatdb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const defaultLimit = 20

// QueryOptions filter the message listing. Zero values mean "no
// filter"; predicates compose with AND.
type QueryOptions struct {
	After           time.Time
	Before          time.Time
	Contact         string
	Limit           int
	Unread          bool
	WithAttachments bool
	SinceRowID      int64
}

const baseMessageQuery = `
SELECT
  m.ROWID,
  m.guid,
  m.text,
  datetime(m.date/1000000000 + 978307200, 'unixepoch', 'localtime') as date,
  CASE WHEN m.date_read > 0 THEN datetime(m.date_read/1000000000 + 978307200, 'unixepoch', 'localtime') ELSE NULL END as date_read,
  CASE WHEN m.date_delivered > 0 THEN datetime(m.date_delivered/1000000000 + 978307200, 'unixepoch', 'localtime') ELSE NULL END as date_delivered,
  CASE WHEN m.date_edited > 0 THEN datetime(m.date_edited/1000000000 + 978307200, 'unixepoch', 'localtime') ELSE NULL END as date_edited,
  CASE WHEN m.date_retracted > 0 THEN datetime(m.date_retracted/1000000000 + 978307200, 'unixepoch', 'localtime') ELSE NULL END as date_retracted,
  m.is_from_me,
  m.is_read,
  m.is_delivered,
  m.is_sent,
  m.service,
  m.is_audio_message,
  m.reply_to_guid,
  m.thread_originator_guid,
  m.associated_message_guid,
  m.associated_message_type,
  m.expressive_send_style_id,
  m.subject,
  m.cache_has_attachments,
  h.id as handle,
  h.service as handle_service,
  c.display_name as chat_name,
  c.chat_identifier
FROM message m
LEFT JOIN handle h ON m.handle_id = h.ROWID
LEFT JOIN chat_message_join cmj ON m.ROWID = cmj.message_id
LEFT JOIN chat c ON cmj.chat_id = c.ROWID
`

// Messages returns messages matching the options, newest first.
func (s *Store) Messages(opts QueryOptions) ([]MessageRow, error) {
	conds := []string{}
	args := []any{}

	if !opts.After.IsZero() {
		conds = append(conds, "m.date >= ?")
		args = append(args, ToAppleTimeNano(opts.After))
	}
	if !opts.Before.IsZero() {
		conds = append(conds, "m.date <= ?")
		args = append(args, ToAppleTimeNano(opts.Before))
	}
	if opts.Contact != "" {
		conds = append(conds, "(h.id LIKE ? OR c.display_name LIKE ? COLLATE NOCASE)")
		pattern := "%" + opts.Contact + "%"
		args = append(args, pattern, pattern)
	}
	if opts.Unread {
		conds = append(conds, "m.is_read = 0 AND m.is_from_me = 0")
	}
	if opts.WithAttachments {
		conds = append(conds, "m.cache_has_attachments = 1")
	}
	if opts.SinceRowID > 0 {
		conds = append(conds, "m.ROWID > ?")
		args = append(args, opts.SinceRowID)
	}

	query := baseMessageQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	query += " ORDER BY m.date DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var out []MessageRow
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MessageByGUID returns the message with the exact guid, or nil if no
// such message exists.
func (s *Store) MessageByGUID(guid string) (*MessageRow, error) {
	rows, err := s.db.Query(baseMessageQuery+" WHERE m.guid = ? LIMIT 1", guid)
	if err != nil {
		return nil, fmt.Errorf("failed to query message %s: %w", guid, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	m, err := scanMessage(rows)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMessage(rows *sql.Rows) (MessageRow, error) {
	var m MessageRow
	err := rows.Scan(
		&m.ROWID,
		&m.GUID,
		&m.Text,
		&m.Date,
		&m.DateRead,
		&m.DateDelivered,
		&m.DateEdited,
		&m.DateRetracted,
		&m.IsFromMe,
		&m.IsRead,
		&m.IsDelivered,
		&m.IsSent,
		&m.Service,
		&m.IsAudioMessage,
		&m.ReplyToGUID,
		&m.ThreadOriginatorGUID,
		&m.AssociatedMessageGUID,
		&m.AssociatedMessageType,
		&m.ExpressiveSendStyleID,
		&m.Subject,
		&m.CacheHasAttachments,
		&m.Handle,
		&m.HandleService,
		&m.ChatName,
		&m.ChatIdentifier,
	)
	if err != nil {
		return m, fmt.Errorf("failed to scan message row: %w", err)
	}
	return m, nil
}

// Attachments returns all attachments joined to a message id.
func (s *Store) Attachments(messageID int64) ([]AttachmentRow, error) {
	query := `
SELECT
  a.ROWID,
  a.filename,
  a.mime_type,
  a.total_bytes,
  a.transfer_name,
  a.uti,
  a.is_sticker
FROM attachment a
JOIN message_attachment_join maj ON a.ROWID = maj.attachment_id
WHERE maj.message_id = ?
`
	rows, err := s.db.Query(query, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for message %d: %w", messageID, err)
	}
	defer rows.Close()

	var out []AttachmentRow
	for rows.Next() {
		var a AttachmentRow
		if err := rows.Scan(&a.ROWID, &a.Filename, &a.MimeType, &a.TotalBytes, &a.TransferName, &a.UTI, &a.IsSticker); err != nil {
			return nil, fmt.Errorf("failed to scan attachment row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Handles returns the distinct handles appearing in message history,
// ordered by identifier.
func (s *Store) Handles() ([]HandleRow, error) {
	query := `
SELECT DISTINCT
  h.ROWID,
  h.id,
  h.service
FROM handle h
WHERE h.id IS NOT NULL
ORDER BY h.id
`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query handles: %w", err)
	}
	defer rows.Close()

	var out []HandleRow
	for rows.Next() {
		var h HandleRow
		if err := rows.Scan(&h.ROWID, &h.ID, &h.Service); err != nil {
			return nil, fmt.Errorf("failed to scan handle row: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// MaxMessageRowID returns the largest message ROWID, or 0 for an empty
// table. Used as the watch watermark.
func (s *Store) MaxMessageRowID() (int64, error) {
	var max int64
	if err := s.db.QueryRow("SELECT COALESCE(MAX(ROWID), 0) FROM message").Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max message rowid: %w", err)
	}
	return max, nil
}
