package dispatch

import (
	"sort"
	"strings"

	"fman/internal/corrector"
)

// Handler runs one internal verb against argv (argv[0] is the verb
// itself, already resolved through any alias).
type Handler func(ctx *Context, argv []string) error

// Command describes one entry in the command table: its canonical
// name, any aliases, the category it belongs to (spec.md §4.9), and
// the handler that executes it.
type Command struct {
	Name     string
	Aliases  []string
	Category string
	Handler  Handler
}

// Table is the full set of registered commands, keyed by every name
// and alias that resolves to it.
type Table struct {
	commands []Command
	byName   map[string]*Command
}

// NewTable builds the command table with every handler wired.
func NewTable() *Table {
	t := &Table{byName: make(map[string]*Command)}
	for _, c := range builtinCommands() {
		t.Register(c)
	}
	return t
}

// Register adds a command under its canonical name and all aliases.
func (t *Table) Register(c Command) {
	t.commands = append(t.commands, c)
	stored := &t.commands[len(t.commands)-1]
	t.byName[c.Name] = stored
	for _, a := range c.Aliases {
		t.byName[a] = stored
	}
}

// IsInternalCommand reports whether name resolves to a registered
// verb or alias; it satisfies parser.Resolver's corresponding method.
func (t *Table) IsInternalCommand(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Lookup resolves name (verb or alias) to its Command.
func (t *Table) Lookup(name string) (*Command, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Names returns every canonical name and alias, for suggestion
// matching and help listings.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for n := range t.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Suggest returns up to n command names fuzzy-matching typo, used to
// build a "did you mean" message for an unrecognized verb.
func (t *Table) Suggest(typo string, n int) []string {
	return corrector.Suggest(typo, t.Names(), n)
}

// Dispatch resolves argv[0] and runs its handler. If argv[0] is
// unrecognized, it returns an input error carrying suggestions.
func (t *Table) Dispatch(ctx *Context, argv []string) error {
	if len(argv) == 0 {
		return nil
	}
	cmd, ok := t.Lookup(argv[0])
	if !ok {
		suggestions := t.Suggest(argv[0], 3)
		reason := "unknown command"
		if len(suggestions) > 0 {
			reason = "unknown command (did you mean " + strings.Join(suggestions, ", ") + "?)"
		}
		return InputError(argv[0], reason)
	}
	return cmd.Handler(ctx, argv)
}
