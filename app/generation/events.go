package generation

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	EventStarted   = "started"
	EventProgress  = "progress"
	EventItemError = "item_error"
	EventDone      = "done"

	StatusGenerating = "generating"
	StatusImage      = "image"
	StatusCreated    = "created"
)

// Event is one step of a bulk run, streamed to the client as it happens.
type Event struct {
	Type string
	Data any
}

type StartedData struct {
	Total int `json:"total"`
}

type ProgressData struct {
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type ItemErrorData struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type DoneData struct {
	Created  int  `json:"created"`
	Failed   int  `json:"failed"`
	Canceled bool `json:"canceled"`
}

// WriteSSE writes e in text/event-stream framing.
func WriteSSE(w io.Writer, e Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
	return err
}
