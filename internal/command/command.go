// Package command parses the line protocol players use to drive a session:
//
//	g        get the current state
//	s        start the clock
//	c <i>    click card i
//	r        restart from the win banner
//	n        deal a new board at any time
package command

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

type Kind byte

const (
	Get     Kind = 'g'
	Start   Kind = 's'
	Click   Kind = 'c'
	Restart Kind = 'r'
	NewGame Kind = 'n'
)

var (
	ErrUnknownCommand = fmt.Errorf("unknown command")
	ErrBadArgs        = fmt.Errorf("invalid arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[Kind]int{
	Get:     0,
	Start:   0,
	Click:   1,
	Restart: 0,
	NewGame: 0,
}

type Command struct {
	Kind  Kind
	Index int
}

func (c Command) String() string {
	if c.Kind == Click {
		return fmt.Sprintf("%c %d", c.Kind, c.Index)
	}
	return string(c.Kind)
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 || len(parts[0]) != 1 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	kind := Kind(parts[0][0])
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %c takes %d argument(s)", ErrBadArgs, kind, nargs,
		)
	}

	cmd := Command{Kind: kind}
	if kind == Click {
		i, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, fmt.Errorf("%w: card index must be an int", ErrBadArgs)
		}
		cmd.Index = i
	}
	return cmd, nil
}

// Lines yields the non-blank lines of a message.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(i, piece) {
				return
			}
			i++
		}
	}
}
