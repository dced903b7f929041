package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/jwebster45206/adventure-console/pkg/state"
	"github.com/stretchr/testify/assert"
)

const helpText = `List of commands:
/inventory
    List your inventory

/screen-id
(alias: /screen)
    Print the current screen's
    id (useful when creating a
    new screen)

/look
(alias: /whereami)
(alias: /where)
(alias: /repeat)
(alias: /again)
    Print the current screen
    again

/help
(alias: /?)
    Print this help message

/exit
(alias: /quit)
    Quit the game
`

func TestRenderer_Help(t *testing.T) {
	assert.Equal(t, helpText, New(0, false).Help())
	assert.Equal(t, helpText, New(10, false).Help(), "help is never wrapped")
}

func TestRenderer_Screen(t *testing.T) {
	r := New(0, false)

	tests := []struct {
		name   string
		screen *state.Screen
		want   string
	}{
		{name: "nil", screen: nil, want: ""},
		{
			name:   "body",
			screen: &state.Screen{ID: "x", Body: []string{"You are in a hall.", "", "A door leads north."}},
			want:   "You are in a hall.\n\nA door leads north.\n",
		},
		{
			name:   "exits",
			screen: &state.Screen{ID: "x", Body: []string{"A crossroads."}, Exits: []string{"north", "east"}},
			want:   "A crossroads.\nExits: north, east\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Screen(tt.screen))
		})
	}
}

func TestRenderer_ScreenWraps(t *testing.T) {
	r := New(20, false)
	out := r.Screen(&state.Screen{Body: []string{"The quick brown fox jumps over the lazy dog."}})
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20, line)
	}
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", strings.Join(strings.Fields(out), " "))
}

func TestRenderer_Inventory(t *testing.T) {
	r := New(0, false)
	assert.Equal(t, "Current inventory:\n", r.Inventory(nil))
	assert.Equal(t, "Current inventory:\n  lamp\n  rusty key\n", r.Inventory([]string{"lamp", "rusty key"}))
}

func TestRenderer_ItemChanges(t *testing.T) {
	r := New(0, false)
	assert.Equal(t, "", r.ItemChanges(nil, []string{}))
	assert.Equal(t, "Items added:\n+ lamp\n", r.ItemChanges([]string{"lamp"}, nil))
	assert.Equal(t, "Items removed:\n- key\n", r.ItemChanges(nil, []string{"key"}))
	assert.Equal(t,
		"Items added:\n+ lamp\n+ rope\nItems removed:\n- key\n",
		r.ItemChanges([]string{"lamp", "rope"}, []string{"key"}))
}

func TestRenderer_ScreenID(t *testing.T) {
	r := New(0, false)
	assert.Equal(t, "abc-123\n", r.ScreenID("abc-123"))
	assert.Equal(t, "No current screen.\n", r.ScreenID(""))
}

func TestRenderer_Error(t *testing.T) {
	r := New(0, false)
	assert.Equal(t, "", r.Error(nil))
	assert.Equal(t, "Error: request failed\n", r.Error(errors.New("request failed")))
}

func TestRenderer_Message(t *testing.T) {
	assert.Equal(t, "one\ntwo\n", New(0, false).Message([]string{"one", "two"}))
}

func TestRenderer_ColorKeepsText(t *testing.T) {
	r := New(0, true)
	assert.Contains(t, r.Inventory([]string{"lamp"}), "Current inventory:")
	assert.Contains(t, r.Error(errors.New("boom")), "Error: boom")
}
