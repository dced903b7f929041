package command

import (
	"strings"

	"golang.org/x/text/cases"
)

type Kind string

const (
	KindLook      Kind = "look"
	KindInventory Kind = "inventory"
	KindScreenID  Kind = "screen-id"
	KindHelp      Kind = "help"
	KindExit      Kind = "exit"
	KindPlay      Kind = "play"
	KindNone      Kind = "" // Blank input
)

// Command is a parsed line of player input. Text is only set for KindPlay.
type Command struct {
	Kind Kind
	Text string
}

// IsLocal reports whether the command is answered without calling the API.
func (c Command) IsLocal() bool {
	switch c.Kind {
	case KindLook, KindInventory, KindScreenID, KindHelp, KindExit:
		return true
	}
	return false
}

// Entry is one row of the command table.
type Entry struct {
	Kind        Kind
	Name        string
	Aliases     []string
	Description []string // Pre-wrapped lines
}

// Table lists the local commands in help order.
var Table = []Entry{
	{
		Kind:        KindInventory,
		Name:        "/inventory",
		Description: []string{"List your inventory"},
	},
	{
		Kind:    KindScreenID,
		Name:    "/screen-id",
		Aliases: []string{"/screen"},
		Description: []string{
			"Print the current screen's",
			"id (useful when creating a",
			"new screen)",
		},
	},
	{
		Kind:    KindLook,
		Name:    "/look",
		Aliases: []string{"/whereami", "/where", "/repeat", "/again"},
		Description: []string{
			"Print the current screen",
			"again",
		},
	},
	{
		Kind:        KindHelp,
		Name:        "/help",
		Aliases:     []string{"/?"},
		Description: []string{"Print this help message"},
	},
	{
		Kind:        KindExit,
		Name:        "/exit",
		Aliases:     []string{"/quit"},
		Description: []string{"Quit the game"},
	},
}

var known = buildIndex(Table)

func buildIndex(table []Entry) map[string]Kind {
	idx := make(map[string]Kind)
	fold := cases.Fold()
	for _, e := range table {
		idx[fold.String(e.Name)] = e.Kind
		for _, a := range e.Aliases {
			idx[fold.String(a)] = e.Kind
		}
	}
	return idx
}

// Parse maps a line of input to a Command. Anything that is not a known
// command or alias is play text for the server; it is never rejected.
func Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Kind: KindNone}
	}
	if kind, ok := known[cases.Fold().String(trimmed)]; ok {
		return Command{Kind: kind}
	}
	return Command{Kind: KindPlay, Text: trimmed}
}
