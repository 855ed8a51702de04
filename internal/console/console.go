package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-progression/internal"
	"github.com/pixil98/go-progression/internal/content"
	"github.com/pixil98/go-progression/internal/display"
	"github.com/pixil98/go-progression/internal/driver"
)

const prompt = "> "

var errQuit = errors.New("quit")

// Progression is the part of the progression store the console drives.
type Progression interface {
	GetItem(item *content.Item) int
	AddItem(item *content.Item, amount int)
	HasItems(stacks []content.ItemStack) bool
	RemoveItems(stacks []content.ItemStack)
	IsUnlocked(c content.Unlockable) bool
	UnlockContent(c content.Unlockable)
	Unlocked(t content.Type) []string
	UpdateWaveScore(zone *content.Zone, wave int)
	GetWaveScore(zone *content.Zone) int
	IsCompleted(zone *content.Zone) bool
	Save() error
	Reset() error
}

// Catalog looks up content definitions by name.
type Catalog interface {
	Item(name string) *content.Item
	ItemList() []*content.Item
	Zone(name string) *content.Zone
	ZoneList() []*content.Zone
	Find(t content.Type, name string) (content.Unlockable, bool)
}

// Statistics reports session delivery counters.
type Statistics interface {
	Delivered(item string) int
	TotalDelivered() int
}

// Runner executes fn on the goroutine that owns the progression store.
type Runner interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

// Console is a line-oriented operator interface to the progression store.
// Command handlers only ever run inside Runner.Do.
type Console struct {
	runner   Runner
	store    Progression
	catalog  Catalog
	stats    Statistics
	commands map[string]*command
}

func New(runner Runner, store Progression, catalog Catalog, stats Statistics) *Console {
	c := &Console{
		runner:   runner,
		store:    store,
		catalog:  catalog,
		stats:    stats,
		commands: map[string]*command{},
	}
	for _, cmd := range builtinCommands() {
		c.commands[cmd.name] = cmd
	}
	return c
}

// RunSession serves one operator connection until it quits, the input
// closes or ctx is cancelled.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	done := make(chan struct{})
	defer close(done)

	in := &lineSource{ctx: ctx}
	in.lines, in.errs = readLines(conn, done)

	if err := writeLine(conn, "Progression console. Type 'help' for commands."); err != nil {
		return err
	}

	for {
		if _, err := conn.Write([]byte(prompt)); err != nil {
			return err
		}

		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out, err := c.exec(ctx, in, conn, line)
		switch {
		case errors.Is(err, errQuit):
			return writeLine(conn, "Goodbye.")
		case errors.Is(err, driver.ErrStopped), errors.Is(err, context.Canceled):
			return err
		case err != nil:
			var userErr *UserError
			if errors.As(err, &userErr) {
				out = userErr.Message
			} else {
				slog.WarnContext(ctx, "console command failed", "command", line, "error", err)
				out = fmt.Sprintf("Error: %s", err)
			}
		}

		if out != "" {
			if err := writeLine(conn, display.Wrap(out)); err != nil {
				return err
			}
		}
	}
}

// Exec runs a single command line and returns its output. Commands that
// need confirmation are refused.
func (c *Console) Exec(ctx context.Context, line string) (string, error) {
	return c.exec(ctx, nil, nil, line)
}

func (c *Console) exec(ctx context.Context, in internal.LineReader, w io.Writer, line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}

	name := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return "", NewUserError(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", name))
	}
	if len(args) < cmd.minArgs {
		return "", NewUserError(fmt.Sprintf("Usage: %s", cmd.usage))
	}

	if cmd.confirm != "" {
		if in == nil {
			return "", NewUserError(fmt.Sprintf("%s must be confirmed interactively.", display.Capitalize(name)))
		}
		ok, err := internal.PromptYN(in, w, cmd.confirm)
		if err != nil {
			return "", err
		}
		if !ok {
			return "Cancelled.", nil
		}
	}

	if cmd.local != nil {
		return cmd.local(c)
	}

	var out string
	err := c.runner.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = cmd.run(c, ctx, args)
		return err
	})
	return out, err
}

func writeLine(w io.Writer, msg string) error {
	_, err := w.Write([]byte(msg + "\n"))
	return err
}

// readLines feeds input lines to a channel until r fails or done closes.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		lr := internal.NewLineReader(r)
		for {
			line, err := lr.ReadLine()
			if err != nil {
				errs <- err
				return
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()

	return lines, errs
}

// lineSource reads lines from the reader goroutine, giving up when ctx ends.
type lineSource struct {
	ctx   context.Context
	lines <-chan string
	errs  <-chan error
}

func (l *lineSource) ReadLine() (string, error) {
	select {
	case <-l.ctx.Done():
		return "", l.ctx.Err()
	case line, ok := <-l.lines:
		if ok {
			return line, nil
		}
		select {
		case err := <-l.errs:
			return "", err
		default:
			return "", io.EOF
		}
	}
}
