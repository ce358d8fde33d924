package contacts

import (
	"context"
	"sync"
)

// batchSize bounds how many osascript processes run at once during
// batch resolution. Chunks run strictly sequentially.
const batchSize = 10

// Resolver maps handle identifiers to display names through a
// Directory, caching every answer (including "no name found") for the
// life of the resolver.
type Resolver struct {
	dir Directory

	mu sync.Mutex
	// identifier -> display name; present-but-empty means the lookup
	// came back empty and must not be retried.
	cache map[string]string
}

// NewResolver returns a Resolver backed by the given directory.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir, cache: make(map[string]string)}
}

// ResolveName returns the display name for a phone or email
// identifier, or "" when the address book has no match. Lookup
// failures degrade to "" — resolution is best-effort.
func (r *Resolver) ResolveName(ctx context.Context, identifier string) string {
	r.mu.Lock()
	if name, ok := r.cache[identifier]; ok {
		r.mu.Unlock()
		return name
	}
	r.mu.Unlock()

	name := r.lookup(ctx, identifier)

	r.mu.Lock()
	r.cache[identifier] = name
	r.mu.Unlock()
	return name
}

func (r *Resolver) lookup(ctx context.Context, identifier string) string {
	var name string
	var err error
	if IsPhone(identifier) {
		name, err = r.dir.LookupByPhone(ctx, identifier)
	} else {
		name, err = r.dir.LookupByEmail(ctx, identifier)
	}
	if err != nil {
		return ""
	}
	return name
}

// ResolveIdentifier looks up a contact by name and returns their first
// phone number, falling back to their first email. Returns "" when no
// match exists or the lookup fails.
func (r *Resolver) ResolveIdentifier(ctx context.Context, name string) string {
	identifier, err := r.dir.LookupByName(ctx, name)
	if err != nil {
		return ""
	}
	return identifier
}

// ResolveNames resolves a batch of identifiers, reusing cached answers
// and dispatching uncached ones in chunks of batchSize with in-chunk
// concurrency. The returned map has an entry for every requested
// identifier.
func (r *Resolver) ResolveNames(ctx context.Context, identifiers []string) map[string]string {
	// Dedupe before dispatch so a chunk never looks up the same
	// identifier twice concurrently.
	seen := make(map[string]struct{}, len(identifiers))
	var uncached []string
	r.mu.Lock()
	for _, id := range identifiers {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := r.cache[id]; !ok {
			uncached = append(uncached, id)
		}
	}
	r.mu.Unlock()

	for start := 0; start < len(uncached); start += batchSize {
		end := start + batchSize
		if end > len(uncached) {
			end = len(uncached)
		}
		chunk := uncached[start:end]

		names := make([]string, len(chunk))
		var wg sync.WaitGroup
		for i, id := range chunk {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				names[i] = r.lookup(ctx, id)
			}(i, id)
		}
		wg.Wait()

		r.mu.Lock()
		for i, id := range chunk {
			r.cache[id] = names[i]
		}
		r.mu.Unlock()
	}

	out := make(map[string]string, len(identifiers))
	r.mu.Lock()
	for _, id := range identifiers {
		out[id] = r.cache[id]
	}
	r.mu.Unlock()
	return out
}

// ClearCache drops every cached resolution; subsequent lookups are
// treated as cold.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string]string)
	r.mu.Unlock()
}
