// Package menu drives the interactive address book session: a numbered main
// menu read line by line, with every data-entry loop guarded by a retry
// controller.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/book"
	"github.com/mesh-intelligence/addressbook/internal/render"
	"github.com/mesh-intelligence/addressbook/internal/retry"
)

// Main menu entries.
const (
	actionCreate = iota + 1
	actionSearch
	actionEdit
	actionDelete
	actionList
	actionSave
	actionExit
)

var mainEntries = []string{
	actionCreate: "Create contact",
	actionSearch: "Search contact",
	actionEdit:   "Edit contact",
	actionDelete: "Delete contact",
	actionList:   "List all contacts",
	actionSave:   "Save contacts",
	actionExit:   "Exit",
}

// invalidNumber is returned by readInt for input that is not an integer.
const invalidNumber = -1

// Menu is one interactive session over a Book.
type Menu struct {
	book        *book.Book
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
	log         *zap.Logger
	style       render.Styles
}

// Option configures a Menu.
type Option func(*Menu)

// WithMaxAttempts sets the retry ceiling for every guarded loop.
func WithMaxAttempts(n int) Option {
	return func(m *Menu) { m.maxAttempts = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.log = l
		}
	}
}

// New returns a Menu reading answers from in and writing prompts to out.
func New(b *book.Book, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		book:        b,
		in:          bufio.NewReader(in),
		out:         out,
		maxAttempts: retry.DefaultMaxAttempts,
		log:         zap.NewNop(),
		style:       render.New(out),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the main menu until the user exits or the input ends. Running
// out of input is a normal end of session. Unsaved changes are not written.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.showMain()
		choice, err := m.readInt("What would you like to do? ")
		if err != nil {
			return m.endOfInput(err)
		}

		switch choice {
		case actionCreate:
			err = m.create()
		case actionSearch:
			err = m.searchAndShow()
		case actionEdit:
			err = m.edit()
		case actionDelete:
			err = m.delete()
		case actionList:
			m.list()
		case actionSave:
			m.save(ctx)
		case actionExit:
			m.println(m.style.Title.Render("Goodbye."))
			return nil
		default:
			m.warn("Pick a number from the menu.")
		}
		if err != nil {
			return m.endOfInput(err)
		}
	}
}

// endOfInput turns io.EOF into a clean exit.
func (m *Menu) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		m.log.Debug("input closed, ending session")
		m.println("")
		return nil
	}
	return err
}

func (m *Menu) showMain() {
	m.println("")
	m.println(m.style.Title.Render("MAIN MENU"))
	for i := actionCreate; i <= actionExit; i++ {
		m.printf("  %d. %s\n", i, mainEntries[i])
	}
}

// newController returns a retry controller whose try-again prompt reads
// from this session.
func (m *Menu) newController() *retry.Controller {
	return retry.New(m.maxAttempts, retry.AskerFunc(func() (string, error) {
		m.printf("  %d. Try again\n  %d. Cancel\n", retry.ChoiceTryAgain, retry.ChoiceCancel)
		return m.readLine("Choose: ")
	}))
}

// readLine prints prompt and returns the next input line without its line
// terminator. Lines have no length limit, so oversized input reaches the
// validators. It returns io.EOF when input is exhausted.
func (m *Menu) readLine(prompt string) (string, error) {
	m.printf("%s", prompt)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// readInt reads a line and parses it as an integer. Anything that is not an
// integer yields invalidNumber.
func (m *Menu) readInt(prompt string) (int, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return invalidNumber, nil
	}
	return n, nil
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) warn(s string) {
	m.println(m.style.Warn.Render(s))
}

func (m *Menu) info(s string) {
	m.println(m.style.OK.Render(s))
}
