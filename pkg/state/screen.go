package state

// Screen is one unit of server content, the equivalent of a room.
type Screen struct {
	ID    string   `json:"id"`
	Body  []string `json:"body"`
	Exits []string `json:"exits,omitempty"`
}
