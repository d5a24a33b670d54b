// Package player defines the player record shared by the api, the store and the ui.
package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("player id must be a string or integer")

// ID is the unique identifier of a player. The remote api is free to send it as either a
// JSON string or a JSON integer so both are accepted and normalised to their text form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return errors.Join(err, ErrInvalidID)
		}

		*id = ID(value)

		return nil
	}

	value, errParse := strconv.ParseInt(string(data), 10, 64)
	if errParse != nil {
		return errors.Join(errParse, ErrInvalidID)
	}

	*id = ID(strconv.FormatInt(value, 10))

	return nil
}

func (id ID) String() string {
	return string(id)
}

// Player is a single entry of the players collection. Any extra fields sent by the api are ignored.
type Player struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Players is an ordered collection of players, kept in the order the api returned them.
type Players []Player

