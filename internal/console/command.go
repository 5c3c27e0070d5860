package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies what a typed line asks for.
type CommandKind int

const (
	CommandAction CommandKind = iota
	CommandThrow
	CommandHold
	CommandCategory
	CommandReset
	CommandLog
	CommandStatsReset
	CommandReplayStart
	CommandReplaySeek
	CommandReplayNext
	CommandReplayBack
	CommandReplaySkip
	CommandReplayLast
	CommandHelp
	CommandQuit
)

var commandNames = map[CommandKind]string{
	CommandAction:      "ACTION",
	CommandThrow:       "THROW",
	CommandHold:        "HOLD",
	CommandCategory:    "CATEGORY",
	CommandReset:       "RESET",
	CommandLog:         "LOG",
	CommandStatsReset:  "STATS_RESET",
	CommandReplayStart: "REPLAY_START",
	CommandReplaySeek:  "REPLAY",
	CommandReplayNext:  "NEXT",
	CommandReplayBack:  "BACK",
	CommandReplaySkip:  "SKIP",
	CommandReplayLast:  "LAST",
	CommandHelp:        "HELP",
	CommandQuit:        "QUIT",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("COMMAND_%d", int(k))
}

// Command is a parsed input line. Index is 0-based for hold, category and
// replay; for skip it is the signed number of states to move.
type Command struct {
	Kind  CommandKind
	Index int
}

var (
	// ErrUnknownCommand is returned for input that matches no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingIndex is returned when hold or category lacks a number.
	ErrMissingIndex = errors.New("missing number")
)

// ParseCommand parses one line of input. Numbers are 1-based as shown on screen.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: CommandAction}, nil
	}

	switch fields[0] {
	case "a", "action":
		return Command{Kind: CommandAction}, nil
	case "t", "throw":
		return Command{Kind: CommandThrow}, nil
	case "r", "reset", "restart":
		return Command{Kind: CommandReset}, nil
	case "log":
		if len(fields) > 1 && fields[1] == "reset" {
			return Command{Kind: CommandStatsReset}, nil
		}
		return Command{Kind: CommandLog}, nil
	case "replay":
		if len(fields) == 1 {
			return Command{Kind: CommandReplayStart}, nil
		}
		return indexed(CommandReplaySeek, fields)
	case "n", "next":
		return Command{Kind: CommandReplayNext}, nil
	case "b", "back":
		return Command{Kind: CommandReplayBack}, nil
	case "last":
		return Command{Kind: CommandReplayLast}, nil
	case "skip":
		n, err := number(CommandReplaySkip, fields)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandReplaySkip, Index: n}, nil
	case "?", "help":
		return Command{Kind: CommandHelp}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	case "h", "hold":
		return indexed(CommandHold, fields)
	case "c", "p", "points":
		return indexed(CommandCategory, fields)
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
}

func indexed(kind CommandKind, fields []string) (Command, error) {
	n, err := number(kind, fields)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: kind, Index: n - 1}, nil
}

func number(kind CommandKind, fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w for %s", ErrMissingIndex, strings.ToLower(kind.String()))
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("parse %s number %q: %w", strings.ToLower(kind.String()), fields[1], err)
	}
	return n, nil
}

const helpText = `Commands:
  <enter>, a    press the action button
  t             throw dice
  h N           hold or release die N (1-5)
  c N           select or deselect points for N (1-6)
  r             restart the game
  log           show recorded states and statistics
  log reset     clear the statistics
  replay [N]    show the first (or Nth) recorded state
  n, b          step forward or back through recorded states
  skip N        move N recorded states (negative goes back)
  last          show the latest recorded state
  q             quit
`
