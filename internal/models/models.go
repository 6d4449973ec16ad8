package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("joke is missing a required field")

// Joke is the unit of content exchanged with the remote service and
// persisted in the favourites file. All three fields come from the remote
// payload and are never mutated after construction.
type Joke struct {
	ID     string `json:"id"`
	Text   string `json:"joke"`
	Status int    `json:"status"`
}

// Equal reports structural equality over all three fields.
func (j Joke) Equal(other Joke) bool {
	return j.ID == other.ID && j.Text == other.Text && j.Status == other.Status
}

// DecodeJoke decodes a remote payload into a Joke. Unlike plain
// json.Unmarshal it rejects objects that omit any of the three fields, so a
// partial payload never replaces the displayed joke.
func DecodeJoke(data []byte) (Joke, error) {
	var raw struct {
		ID     *string `json:"id"`
		Text   *string `json:"joke"`
		Status *int    `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Joke{}, fmt.Errorf("decode joke: %w", err)
	}

	switch {
	case raw.ID == nil:
		return Joke{}, fmt.Errorf("%w: id", ErrMissingField)
	case raw.Text == nil:
		return Joke{}, fmt.Errorf("%w: joke", ErrMissingField)
	case raw.Status == nil:
		return Joke{}, fmt.Errorf("%w: status", ErrMissingField)
	}

	return Joke{ID: *raw.ID, Text: *raw.Text, Status: *raw.Status}, nil
}
