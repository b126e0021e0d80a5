// Package ipc is the message-passing boundary in front of the note Service.
// Requests name a channel and carry positional JSON arguments; every
// response is an envelope that is either ok with data and elapsed
// milliseconds, or not ok with a short error message.
package ipc

import (
	"encoding/json"
	"regexp"
)

// Channels understood by the Handler.
const (
	ChannelList      = "notes:list"
	ChannelGet       = "notes:get"
	ChannelCreate    = "notes:create"
	ChannelUpdate    = "notes:update"
	ChannelDelete    = "notes:delete"
	ChannelSeed      = "notes:seed"
	ChannelFootprint = "notes:metrics:footprint"
	ChannelMemory    = "notes:metrics:memory"
)

// Error messages carried by failed responses.
const (
	MsgInvalidID      = "invalid id"
	MsgNotFound       = "not found"
	MsgInvalidInput   = "invalid input"
	MsgEmptyPatch     = "empty patch"
	MsgInvalidRequest = "invalid request"
	MsgUnknownChannel = "unknown channel"
)

// Request is one call across the boundary.
type Request struct {
	Seq     int64             `json:"seq,omitempty"`
	Channel string            `json:"channel"`
	Args    []json.RawMessage `json:"args,omitempty"`
}

// Response is the tagged result of a Request.
type Response struct {
	Seq   int64   `json:"seq,omitempty"`
	OK    bool    `json:"ok"`
	Data  any     `json:"data,omitempty"`
	Ms    float64 `json:"ms"`
	Error string  `json:"error,omitempty"`
}

// SeedResult is the payload of a successful seed call.
type SeedResult struct {
	Created int `json:"created"`
}

func ok(data any, ms float64) Response {
	return Response{OK: true, Data: data, Ms: ms}
}

func fail(message string) Response {
	return Response{OK: false, Error: message}
}

var idPattern = regexp.MustCompile(`^[0-9a-fA-F-]{10,}$`)

// ValidID reports whether id has the shape of a hyphenated hex token of at
// least ten characters. It is checked before any I/O, on top of the
// basename confinement done by the storage layer.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
