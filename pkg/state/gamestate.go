package state

import (
	"encoding/json"
	"fmt"

	lzstring "github.com/daku10/go-lz-string"
)

// GameState is the part of the game the server leaves to the client. It
// travels with every command as an opaque, compressed string.
type GameState struct {
	Inventory []string `json:"inventory"`
}

func NewGameState() *GameState {
	return &GameState{
		Inventory: make([]string, 0),
	}
}

// Encode serializes the state as JSON compressed with LZ-String's
// URI-safe encoding, the format the server expects.
func (gs *GameState) Encode() (string, error) {
	inv := gs.Inventory
	if inv == nil {
		inv = []string{}
	}
	data, err := json.Marshal(GameState{Inventory: inv})
	if err != nil {
		return "", fmt.Errorf("failed to marshal game state: %w", err)
	}
	encoded, err := lzstring.CompressToEncodedURIComponent(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to compress game state: %w", err)
	}
	return encoded, nil
}

// DecodeGameState reverses Encode.
func DecodeGameState(encoded string) (*GameState, error) {
	raw, err := lzstring.DecompressFromEncodedURIComponent(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress game state %q: %w", encoded, err)
	}
	if raw == "" {
		return nil, fmt.Errorf("failed to decompress game state %q: empty result", encoded)
	}

	var gs GameState
	if err := json.Unmarshal([]byte(raw), &gs); err != nil {
		return nil, fmt.Errorf("failed to parse game state: %w", err)
	}
	if gs.Inventory == nil {
		gs.Inventory = make([]string, 0)
	}
	return &gs, nil
}
