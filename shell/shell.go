// Package shell implements a line based command interpreter for serial
// terminals.
package shell

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/buildkite/shellwords"
)

// LineSize is the maximum length of a command line.
const LineSize = 512

const (
	bell      = 7
	backspace = 8
	del       = 127
)

// ErrExit is returned by Run after the exit command.
var ErrExit = errors.New("shell: exit")

// Terminal is what a shell runs on.
type Terminal interface {
	io.ByteReader
	io.Writer
}

// Command runs a command. args[0] is the command's name.
type Command func(w io.Writer, args []string) error

type Shell struct {
	term     Terminal
	prefix   string
	commands map[string]Command
	line     [LineSize]byte
}

// New returns a shell with the echo and exit commands.
func New(term Terminal, prefix string) *Shell {
	s := &Shell{
		term:     term,
		prefix:   prefix,
		commands: make(map[string]Command),
	}
	s.Handle("echo", echo)
	s.Handle("exit", func(io.Writer, []string) error { return ErrExit })
	return s
}

// Handle registers cmd as name, replacing any previous command.
func (s *Shell) Handle(name string, cmd Command) {
	s.commands[name] = cmd
}

// Commands returns the names of all commands.
func (s *Shell) Commands() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run prompts for commands and executes them until a command returns
// ErrExit or reading from the terminal fails.
func (s *Shell) Run() error {
	for {
		fmt.Fprintf(s.term, "%s ", s.prefix)
		line, err := s.ReadLine()
		if err != nil {
			return err
		}
		if err := s.Exec(line); errors.Is(err, ErrExit) {
			return err
		}
	}
}

// Run runs a shell with the default commands on term.
func Run(term Terminal, prefix string) error {
	return New(term, prefix).Run()
}

// ReadLine reads and echoes a line. Backspace removes the last character.
// Input beyond LineSize is dropped and answered with a bell.
func (s *Shell) ReadLine() (string, error) {
	n := 0
	for {
		b, err := s.term.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '\r', '\n':
			s.term.Write([]byte{'\n'})
			return string(s.line[:n]), nil
		case backspace, del:
			if n == 0 {
				s.term.Write([]byte{bell})
				continue
			}
			n--
			s.term.Write([]byte{backspace, ' ', backspace})
		default:
			if n == len(s.line) {
				s.term.Write([]byte{bell})
				continue
			}
			s.line[n] = b
			n++
			s.term.Write([]byte{b})
		}
	}
}

// Exec executes a single command line. Errors of commands other than ErrExit
// are printed and returned.
func (s *Shell) Exec(line string) error {
	args, err := shellwords.SplitPosix(line)
	if err != nil {
		fmt.Fprintln(s.term, "error parsing command")
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, ok := s.commands[args[0]]
	if !ok {
		fmt.Fprintf(s.term, "unknown command: %s\n", args[0])
		return fmt.Errorf("shell: unknown command %q", args[0])
	}
	if err = cmd(s.term, args); err != nil && !errors.Is(err, ErrExit) {
		fmt.Fprintf(s.term, "%s: %v\n", args[0], err)
	}
	return err
}

func echo(w io.Writer, args []string) error {
	_, err := fmt.Fprintln(w, strings.Join(args[1:], " "))
	return err
}
