package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Napageneral/chat/internal/chatdb"
	"github.com/Napageneral/chat/internal/config"
	"github.com/Napageneral/chat/internal/contacts"
	"github.com/Napageneral/chat/internal/format"
)

func newWatchCmd() *cobra.Command {
	var debounceSec int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for new messages and print them as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return runWatch(cmd, store, cfg, debounceSec, verbose)
		},
	}

	cmd.Flags().IntVar(&debounceSec, "debounce", 2, "Seconds to wait after a change before querying")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show more details (delivery times, effects)")
	return cmd
}

// watchPrinter drains and prints messages past a ROWID watermark.
// Debounce timers fire on their own goroutines and can overlap a slow
// run (contact resolution shells out per handle), so the mutex
// serializes runs and the watermark advances before formatting: a
// follow-up run only sees rows the previous one hadn't claimed.
type watchPrinter struct {
	store     *chatdb.Store
	resolver  *contacts.Resolver
	noResolve bool
	opts      format.Options
	out       io.Writer

	mu        sync.Mutex
	watermark int64
}

func (p *watchPrinter) printNew(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs, err := p.store.Messages(chatdb.QueryOptions{SinceRowID: p.watermark, Limit: 200})
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch query error: %v\n", err)
		return
	}
	if len(msgs) == 0 {
		return
	}

	for _, m := range msgs {
		if m.ROWID > p.watermark {
			p.watermark = m.ROWID
		}
	}

	var handles []string
	for _, m := range msgs {
		if m.Handle.Valid && m.Handle.String != "" {
			handles = append(handles, m.Handle.String)
		}
	}
	nameMap := map[string]string{}
	if !p.noResolve {
		nameMap = p.resolver.ResolveNames(ctx, handles)
	}

	// Oldest first, like a conversation.
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		fm := format.Message{Row: m, ContactName: nameMap[m.Handle.String]}
		if m.CacheHasAttachments {
			if atts, err := p.store.Attachments(m.ROWID); err == nil {
				fm.Attachments = atts
			}
		}
		fmt.Fprintln(p.out, format.FormatMessage(fm, p.opts))
		fmt.Fprintln(p.out)
	}
}

func runWatch(cmd *cobra.Command, store *chatdb.Store, cfg *config.Config, debounceSec int, verbose bool) error {
	ctx := cmd.Context()

	// Start from the current max ROWID so only new messages print.
	watermark, err := store.MaxMessageRowID()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: sqlite writes land in chat.db-wal, and the
	// db file itself is replaced on checkpoint.
	chatDBDir := filepath.Dir(store.Path())
	if err := watcher.Add(chatDBDir); err != nil {
		return fmt.Errorf("watch %s: %w", chatDBDir, err)
	}

	fmt.Printf("Watching for new messages in %s (debounce: %ds)\n", chatDBDir, debounceSec)
	fmt.Println("Press Ctrl+C to stop")

	printer := &watchPrinter{
		store:     store,
		resolver:  contacts.NewResolver(contacts.NewContactsApp()),
		noResolve: cfg.NoResolve,
		opts:      format.Options{Verbose: verbose},
		out:       os.Stdout,
		watermark: watermark,
	}

	debounceDelay := time.Duration(debounceSec) * time.Second
	var debounceTimer *time.Timer
	trigger := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(debounceDelay, func() { printer.printNew(ctx) })
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.Contains(event.Name, "chat.db") {
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
