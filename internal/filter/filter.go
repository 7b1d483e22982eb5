// Package filter builds the subscription filter objects carried by REQ
// envelopes. The envelope codec treats filters as opaque; this package only
// produces their JSON form, it never matches them against events.
package filter

import "encoding/json"

// Filter narrows a subscription to matching events. Zero-valued fields are
// omitted from the wire form.
type Filter struct {
	IDs      []string `json:"ids,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Kinds    []int    `json:"kinds,omitempty"`
	Events   []string `json:"#e,omitempty"`
	Profiles []string `json:"#p,omitempty"`
	Since    int64    `json:"since,omitempty"`
	Until    int64    `json:"until,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// Raw returns the opaque wire form for embedding in a REQ envelope.
func (f Filter) Raw() (json.RawMessage, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
