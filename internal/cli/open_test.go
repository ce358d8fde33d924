package cli

import (
	"database/sql"
	"os"
	"testing"

	"github.com/Napageneral/chat/internal/chatdb"
)

func TestPickAttachment(t *testing.T) {
	atts := []chatdb.AttachmentRow{
		{ROWID: 1, Filename: sql.NullString{String: "/tmp/a.png", Valid: true}},
		{ROWID: 2, Filename: sql.NullString{String: "/tmp/b.png", Valid: true}},
		{ROWID: 3},
	}

	got, err := pickAttachment(atts, 2)
	if err != nil {
		t.Fatalf("pickAttachment: %v", err)
	}
	if got.ROWID != 2 {
		t.Fatalf("picked %d want 2", got.ROWID)
	}

	for _, idx := range []int{0, -1, 4} {
		if _, err := pickAttachment(atts, idx); err == nil {
			t.Fatalf("index %d should be rejected", idx)
		}
	}

	// Third attachment has no stored path.
	if _, err := pickAttachment(atts, 3); err == nil {
		t.Fatal("pathless attachment should be rejected")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got := expandHome("~/Library/Messages/Attachments/a.png")
	want := home + "/Library/Messages/Attachments/a.png"
	if got != want {
		t.Fatalf("expandHome=%q want %q", got, want)
	}

	if got := expandHome("/absolute/path.png"); got != "/absolute/path.png" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
