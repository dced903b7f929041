package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/adventure-console/pkg/command"
	"github.com/jwebster45206/adventure-console/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const Prompt = "\n> "

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	addedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

// Renderer turns game data into terminal text. Every method returns a block
// ending in a newline, or "" when there is nothing to show.
type Renderer struct {
	width int  // Wrap width; 0 disables wrapping
	color bool // Apply lipgloss styles
}

func New(width int, color bool) *Renderer {
	return &Renderer{width: width, color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) wrap(line string) string {
	if r.width <= 0 {
		return line
	}
	return wordwrap.String(line, r.width)
}

func (r *Renderer) lines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(r.wrap(l))
		b.WriteString("\n")
	}
	return b.String()
}

// Screen prints the screen body, followed by its exits when the server sent any.
func (r *Renderer) Screen(s *state.Screen) string {
	if s == nil {
		return ""
	}
	out := r.lines(s.Body)
	if len(s.Exits) > 0 {
		out += r.style(dimStyle, r.wrap("Exits: "+strings.Join(s.Exits, ", "))) + "\n"
	}
	return out
}

// Message prints server message lines verbatim.
func (r *Renderer) Message(lines []string) string {
	return r.lines(lines)
}

func (r *Renderer) Inventory(items []string) string {
	var b strings.Builder
	b.WriteString(r.style(headingStyle, "Current inventory:") + "\n")
	for _, item := range items {
		b.WriteString("  " + item + "\n")
	}
	return b.String()
}

// ItemChanges lists items gained and lost by the last command.
func (r *Renderer) ItemChanges(added, removed []string) string {
	var b strings.Builder
	if len(added) > 0 {
		b.WriteString(r.style(headingStyle, "Items added:") + "\n")
		for _, item := range added {
			b.WriteString(r.style(addedStyle, "+ "+item) + "\n")
		}
	}
	if len(removed) > 0 {
		b.WriteString(r.style(headingStyle, "Items removed:") + "\n")
		for _, item := range removed {
			b.WriteString(r.style(removedStyle, "- "+item) + "\n")
		}
	}
	return b.String()
}

func (r *Renderer) ScreenID(id string) string {
	if id == "" {
		return r.style(dimStyle, "No current screen.") + "\n"
	}
	return id + "\n"
}

// Help prints the command table. It is never wrapped.
func (r *Renderer) Help() string {
	var b strings.Builder
	b.WriteString(r.style(headingStyle, "List of commands:") + "\n")
	for i, e := range command.Table {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Name + "\n")
		for _, a := range e.Aliases {
			b.WriteString("(alias: " + a + ")\n")
		}
		for _, d := range e.Description {
			b.WriteString("    " + d + "\n")
		}
	}
	return b.String()
}

func (r *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	return r.style(errorStyle, r.wrap("Error: "+err.Error())) + "\n"
}
