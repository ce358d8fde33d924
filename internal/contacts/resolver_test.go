package contacts

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeDirectory records lookups and serves canned answers.
type fakeDirectory struct {
	mu      sync.Mutex
	names   map[string]string // identifier -> name
	idents  map[string]string // name -> identifier
	lookups map[string]int
	err     error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		names:   make(map[string]string),
		idents:  make(map[string]string),
		lookups: make(map[string]int),
	}
}

func (f *fakeDirectory) record(key string) {
	f.mu.Lock()
	f.lookups[key]++
	f.mu.Unlock()
}

func (f *fakeDirectory) LookupByPhone(ctx context.Context, phone string) (string, error) {
	f.record(phone)
	if f.err != nil {
		return "", f.err
	}
	return f.names[phone], nil
}

func (f *fakeDirectory) LookupByEmail(ctx context.Context, email string) (string, error) {
	f.record(email)
	if f.err != nil {
		return "", f.err
	}
	return f.names[email], nil
}

func (f *fakeDirectory) LookupByName(ctx context.Context, name string) (string, error) {
	f.record(name)
	if f.err != nil {
		return "", f.err
	}
	return f.idents[name], nil
}

func (f *fakeDirectory) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups[key]
}

func TestIsPhone(t *testing.T) {
	cases := map[string]bool{
		"+14155551234":     true,
		"(415) 555-1234":   true,
		"415 555 1234":     true,
		"alice@example.io": false,
		"Alice Smith":      false,
		"":                 false,
	}
	for in, want := range cases {
		if got := IsPhone(in); got != want {
			t.Fatalf("IsPhone(%q)=%v want %v", in, got, want)
		}
	}
}

func TestResolveNameCaches(t *testing.T) {
	dir := newFakeDirectory()
	dir.names["+14155551234"] = "Alice Smith"
	r := NewResolver(dir)
	ctx := context.Background()

	if got := r.ResolveName(ctx, "+14155551234"); got != "Alice Smith" {
		t.Fatalf("ResolveName=%q want %q", got, "Alice Smith")
	}
	if got := r.ResolveName(ctx, "+14155551234"); got != "Alice Smith" {
		t.Fatalf("ResolveName=%q want %q", got, "Alice Smith")
	}
	if n := dir.count("+14155551234"); n != 1 {
		t.Fatalf("expected 1 lookup, got %d", n)
	}
}

func TestResolveNameCachesNotFound(t *testing.T) {
	dir := newFakeDirectory()
	r := NewResolver(dir)
	ctx := context.Background()

	if got := r.ResolveName(ctx, "nobody@example.io"); got != "" {
		t.Fatalf("ResolveName=%q want empty", got)
	}
	r.ResolveName(ctx, "nobody@example.io")
	if n := dir.count("nobody@example.io"); n != 1 {
		t.Fatalf("not-found result was re-resolved: %d lookups", n)
	}
}

func TestResolveNameLookupFailureDegrades(t *testing.T) {
	dir := newFakeDirectory()
	dir.err = errors.New("osascript exploded")
	r := NewResolver(dir)

	if got := r.ResolveName(context.Background(), "+14155551234"); got != "" {
		t.Fatalf("ResolveName=%q want empty on failure", got)
	}
}

func TestResolveNamesBatchDedupes(t *testing.T) {
	dir := newFakeDirectory()
	dir.names["+14155551234"] = "Alice Smith"
	dir.names["bob@example.io"] = "Bob Jones"
	r := NewResolver(dir)

	ids := []string{
		"+14155551234",
		"bob@example.io",
		"+14155551234",
		"carol@example.io",
		"bob@example.io",
	}
	got := r.ResolveNames(context.Background(), ids)

	if len(got) != 3 {
		t.Fatalf("expected 3 map entries, got %d", len(got))
	}
	if got["+14155551234"] != "Alice Smith" || got["bob@example.io"] != "Bob Jones" {
		t.Fatalf("unexpected resolutions: %v", got)
	}
	if got["carol@example.io"] != "" {
		t.Fatalf("expected empty name for carol, got %q", got["carol@example.io"])
	}
	for _, id := range []string{"+14155551234", "bob@example.io", "carol@example.io"} {
		if n := dir.count(id); n != 1 {
			t.Fatalf("expected 1 lookup for %s, got %d", id, n)
		}
	}
}

func TestResolveNamesLargeBatchCoversAll(t *testing.T) {
	dir := newFakeDirectory()
	r := NewResolver(dir)

	var ids []string
	for i := 0; i < 25; i++ {
		ids = append(ids, string(rune('a'+i))+"@example.io")
	}
	got := r.ResolveNames(context.Background(), ids)
	for _, id := range ids {
		if _, ok := got[id]; !ok {
			t.Fatalf("missing entry for %s", id)
		}
	}
}

func TestResolveNamesUsesCache(t *testing.T) {
	dir := newFakeDirectory()
	dir.names["+14155551234"] = "Alice Smith"
	r := NewResolver(dir)
	ctx := context.Background()

	r.ResolveName(ctx, "+14155551234")
	got := r.ResolveNames(ctx, []string{"+14155551234"})
	if got["+14155551234"] != "Alice Smith" {
		t.Fatalf("unexpected resolution: %v", got)
	}
	if n := dir.count("+14155551234"); n != 1 {
		t.Fatalf("cached identifier was re-resolved: %d lookups", n)
	}
}

func TestClearCache(t *testing.T) {
	dir := newFakeDirectory()
	dir.names["+14155551234"] = "Alice Smith"
	r := NewResolver(dir)
	ctx := context.Background()

	r.ResolveName(ctx, "+14155551234")
	r.ClearCache()
	r.ResolveName(ctx, "+14155551234")
	if n := dir.count("+14155551234"); n != 2 {
		t.Fatalf("expected cold lookup after ClearCache, got %d lookups", n)
	}
}

func TestResolveIdentifier(t *testing.T) {
	dir := newFakeDirectory()
	dir.idents["Alice"] = "+14155551234"
	r := NewResolver(dir)

	if got := r.ResolveIdentifier(context.Background(), "Alice"); got != "+14155551234" {
		t.Fatalf("ResolveIdentifier=%q want %q", got, "+14155551234")
	}
	if got := r.ResolveIdentifier(context.Background(), "Zed"); got != "" {
		t.Fatalf("ResolveIdentifier=%q want empty", got)
	}
}
