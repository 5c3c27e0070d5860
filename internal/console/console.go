package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/HabbuBB/mini-yahtzee-go/internal/game"
	"go.uber.org/zap"
)

// Console reads commands line by line and renders the game after each one.
type Console struct {
	session *Session
	in      io.Reader
	out     io.Writer
	logger  *zap.Logger
}

// New creates a console for session reading from in and writing to out.
func New(session *Session, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		session: session,
		in:      in,
		out:     out,
		logger:  logger,
	}
}

// Run processes input until quit, end of input, or ctx is cancelled. A
// cancelled context stops Run even while it waits for a line.
func (c *Console) Run(ctx context.Context) error {
	if err := Render(c.out, c.session.Snapshot()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := c.readLines(done)

	for {
		if _, err := fmt.Fprint(c.out, "> "); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := c.handle(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// readLines scans c.in on its own goroutine so Run can wait on the context
// and the input together. The goroutine exits at end of input or once done
// is closed and it has a line to hand over.
func (c *Console) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

// handle processes one line. It returns true when the player quits.
func (c *Console) handle(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		c.logger.Debug("invalid input", zap.String("line", line), zap.Error(err))
		_, werr := fmt.Fprintf(c.out, "%v (type help for commands)\n", err)
		return false, werr
	}

	switch cmd.Kind {
	case CommandQuit:
		return true, nil
	case CommandHelp:
		_, err := io.WriteString(c.out, helpText)
		return false, err
	case CommandLog:
		return false, c.writeLog()
	case CommandStatsReset:
		c.session.ResetStats()
		_, err := io.WriteString(c.out, "Statistics cleared\n")
		return false, err
	case CommandReplayStart, CommandReplaySeek, CommandReplayNext,
		CommandReplayBack, CommandReplaySkip, CommandReplayLast:
		return false, c.browse(cmd)
	}

	out := c.session.Dispatch(cmd)
	c.logger.Debug("command dispatched",
		zap.Stringer("command", cmd.Kind),
		zap.Int("index", cmd.Index),
		zap.Bool("accepted", out.Accepted),
		zap.String("reason", out.Reason),
	)

	if err := Render(c.out, c.session.Snapshot()); err != nil {
		return false, fmt.Errorf("render: %w", err)
	}
	return false, nil
}

func (c *Console) writeLog() error {
	stats := c.session.Stats()
	recorded := 0
	if replay := c.session.Replay(); replay != nil {
		recorded = replay.Size()
	}
	_, err := fmt.Fprintf(c.out,
		"States recorded: %d\nThrows: %d\nRounds started: %d\nRejected intents: %d\nGames completed: %d\n",
		recorded,
		stats.Throws(),
		stats.RoundsStarted(),
		stats.TotalRejected(),
		stats.GamesCompleted(),
	)
	return err
}

// browse moves through the recorded states and renders the one reached.
// The live game is untouched.
func (c *Console) browse(cmd Command) error {
	replay := c.session.Replay()
	if replay == nil {
		_, err := io.WriteString(c.out, "Replay is disabled\n")
		return err
	}

	var (
		state game.Snapshot
		ok    bool
	)
	switch cmd.Kind {
	case CommandReplayStart:
		state, ok = replay.Start()
	case CommandReplaySeek:
		state, ok = replay.Seek(cmd.Index)
	case CommandReplayNext:
		state, ok = replay.Next()
	case CommandReplayBack:
		state, ok = replay.Previous()
	case CommandReplaySkip:
		state, ok = replay.Skip(cmd.Index)
	case CommandReplayLast:
		state, ok = replay.Latest()
	}
	if !ok {
		_, err := fmt.Fprintf(c.out, "No recorded state there (%d recorded)\n", replay.Size())
		return err
	}

	c.logger.Debug("replay state shown",
		zap.Stringer("command", cmd.Kind),
		zap.Int("position", replay.Cursor()),
	)
	if err := RenderReplay(c.out, state, replay.Cursor(), replay.Size()); err != nil {
		return fmt.Errorf("render replay: %w", err)
	}
	return nil
}
