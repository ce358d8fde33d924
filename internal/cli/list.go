package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Napageneral/chat/internal/chatdb"
	"github.com/Napageneral/chat/internal/config"
	"github.com/Napageneral/chat/internal/contacts"
	"github.com/Napageneral/chat/internal/dates"
	"github.com/Napageneral/chat/internal/format"
)

type listOptions struct {
	limit           int
	from            string
	date            string
	after           string
	before          string
	lastWeek        bool
	lastMonth       bool
	lastYear        bool
	thisWeek        bool
	thisMonth       bool
	thisYear        bool
	last            string
	unread          bool
	withAttachments bool
	jsonOut         bool
	verbose         bool
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Number of messages to show (default 20)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Filter by sender name, phone, or email")
	cmd.Flags().StringVar(&opts.date, "date", "", "Show messages from a specific date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.after, "after", "", "Show messages after this date")
	cmd.Flags().StringVar(&opts.before, "before", "", "Show messages before this date")
	cmd.Flags().BoolVar(&opts.lastWeek, "last-week", false, "Show messages from the last 7 days")
	cmd.Flags().BoolVar(&opts.lastMonth, "last-month", false, "Show messages from the last 30 days")
	cmd.Flags().BoolVar(&opts.lastYear, "last-year", false, "Show messages from the last 365 days")
	cmd.Flags().BoolVar(&opts.thisWeek, "this-week", false, "Show messages from start of this week")
	cmd.Flags().BoolVar(&opts.thisMonth, "this-month", false, "Show messages from start of this month")
	cmd.Flags().BoolVar(&opts.thisYear, "this-year", false, "Show messages from start of this year")
	cmd.Flags().StringVar(&opts.last, "last", "", `Natural date expression (e.g. "15 days", "2 weeks")`)
	cmd.Flags().BoolVar(&opts.unread, "unread", false, "Show only unread messages")
	cmd.Flags().BoolVar(&opts.withAttachments, "with-attachments", false, "Show only messages with attachments")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show more details (delivery times, effects)")

	return cmd
}

// buildQueryOptions translates list flags into query options. Only the
// first recognized date shortcut applies; explicit --date/--after/
// --before refine or override it. Unparseable date input is an error:
// a filter the user asked for must never be silently dropped.
func buildQueryOptions(opts listOptions, cfg *config.Config) (chatdb.QueryOptions, error) {
	q := chatdb.QueryOptions{
		Limit:           opts.limit,
		Unread:          opts.unread,
		WithAttachments: opts.withAttachments,
	}
	if q.Limit <= 0 {
		q.Limit = cfg.DefaultLimit
	}

	expr := ""
	switch {
	case opts.lastWeek:
		expr = "last week"
	case opts.lastMonth:
		expr = "last month"
	case opts.lastYear:
		expr = "last year"
	case opts.thisWeek:
		expr = "this week"
	case opts.thisMonth:
		expr = "this month"
	case opts.thisYear:
		expr = "this year"
	case opts.last != "":
		expr = "last " + opts.last
	}
	if expr != "" {
		r, ok := dates.ParseExpression(expr)
		if !ok {
			return q, fmt.Errorf("unrecognized date expression %q", expr)
		}
		q.After = r.After
		q.Before = r.Before
	}

	if opts.date != "" {
		d, ok := dates.ParseDate(opts.date)
		if !ok {
			return q, fmt.Errorf("unrecognized date %q", opts.date)
		}
		r := dates.DayRange(d)
		q.After = r.After
		q.Before = r.Before
	}
	if opts.after != "" {
		d, ok := dates.ParseDate(opts.after)
		if !ok {
			return q, fmt.Errorf("unrecognized date %q", opts.after)
		}
		q.After = d
	}
	if opts.before != "" {
		d, ok := dates.ParseDate(opts.before)
		if !ok {
			return q, fmt.Errorf("unrecognized date %q", opts.before)
		}
		q.Before = d
	}

	return q, nil
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	q, err := buildQueryOptions(opts, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, format.Red(err.Error()))
		return nil
	}
	resolver := contacts.NewResolver(contacts.NewContactsApp())

	// A name that doesn't look like a phone/email gets resolved to an
	// identifier, falling back to a plain substring match on miss.
	if opts.from != "" {
		q.Contact = opts.from
		if !contacts.IsPhone(opts.from) && !contacts.IsEmail(opts.from) && !cfg.NoResolve {
			fmt.Println(format.Dim(fmt.Sprintf("Looking up %q in Contacts...", opts.from)))
			if identifier := resolver.ResolveIdentifier(ctx, opts.from); identifier != "" {
				fmt.Println(format.Dim("Found: " + identifier))
				q.Contact = identifier
			}
		}
	}

	msgs, err := store.Messages(q)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("No messages found matching the criteria.")
		return nil
	}

	var handles []string
	for _, m := range msgs {
		if m.Handle.Valid && m.Handle.String != "" {
			handles = append(handles, m.Handle.String)
		}
	}
	nameMap := map[string]string{}
	if !cfg.NoResolve {
		nameMap = resolver.ResolveNames(ctx, handles)
	}

	formatted := make([]format.Message, 0, len(msgs))
	for _, m := range msgs {
		fm := format.Message{Row: m, ContactName: nameMap[m.Handle.String]}
		if m.CacheHasAttachments {
			atts, err := store.Attachments(m.ROWID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			fm.Attachments = atts
		}
		formatted = append(formatted, fm)
	}

	if opts.jsonOut {
		out, err := format.MessagesJSON(formatted)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	// Oldest first for reading order; the query returns newest first.
	fopts := format.Options{Verbose: opts.verbose}
	for i := len(formatted) - 1; i >= 0; i-- {
		fmt.Println(format.FormatMessage(formatted[i], fopts))
		fmt.Println()
	}
	return nil
}
