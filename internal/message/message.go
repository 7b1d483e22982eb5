package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"nostrium/internal/event"
)

// Envelope labels.
const (
	LabelEvent  = "EVENT"
	LabelReq    = "REQ"
	LabelClose  = "CLOSE"
	LabelEose   = "EOSE"
	LabelOk     = "OK"
	LabelNotice = "NOTICE"
)

var (
	// ErrUnknownMessage reports an array whose label, arity or payload
	// types do not match any known envelope.
	ErrUnknownMessage = errors.New("unknown message")

	// ErrUnsignedEvent reports an EVENT envelope carrying an event without
	// id and sig.
	ErrUnsignedEvent = errors.New("event envelope requires a signed event")

	// ErrNoFilters reports a REQ envelope with an empty filter list.
	ErrNoFilters = errors.New("req envelope needs at least one filter")
)

// Envelope is one client-relay wire message.
type Envelope interface {
	Label() string
}

// EventMsg publishes or delivers a signed event.
type EventMsg struct {
	Event *event.Event
}

// Label returns the envelope tag.
func (EventMsg) Label() string { return LabelEvent }

// ReqMsg opens a subscription with one or more filters. Filters are opaque
// objects carried verbatim.
type ReqMsg struct {
	SubscriptionID string
	Filters        []json.RawMessage
}

// Label returns the envelope tag.
func (ReqMsg) Label() string { return LabelReq }

// CloseMsg closes a subscription.
type CloseMsg struct {
	SubscriptionID string
}

// Label returns the envelope tag.
func (CloseMsg) Label() string { return LabelClose }

// EoseMsg marks the end of stored events for a subscription.
type EoseMsg struct {
	SubscriptionID string
}

// Label returns the envelope tag.
func (EoseMsg) Label() string { return LabelEose }

// OkMsg acknowledges an event submission.
type OkMsg struct {
	EventID  string
	Accepted bool
	Message  string
}

// Label returns the envelope tag.
func (OkMsg) Label() string { return LabelOk }

// NoticeMsg carries a human-readable relay notice.
type NoticeMsg struct {
	Message string
}

// Label returns the envelope tag.
func (NoticeMsg) Label() string { return LabelNotice }

// Encode serializes an envelope to its wire array.
func Encode(env Envelope) ([]byte, error) {
	switch m := env.(type) {
	case EventMsg:
		if m.Event == nil || !m.Event.Signed() {
			return nil, ErrUnsignedEvent
		}
		return marshalArray(LabelEvent, m.Event)
	case ReqMsg:
		if len(m.Filters) == 0 {
			return nil, ErrNoFilters
		}
		parts := make([]any, 0, len(m.Filters)+2)
		parts = append(parts, LabelReq, m.SubscriptionID)
		for _, f := range m.Filters {
			parts = append(parts, f)
		}
		return marshalArray(parts...)
	case CloseMsg:
		return marshalArray(LabelClose, m.SubscriptionID)
	case EoseMsg:
		return marshalArray(LabelEose, m.SubscriptionID)
	case OkMsg:
		return marshalArray(LabelOk, m.EventID, m.Accepted, m.Message)
	case NoticeMsg:
		return marshalArray(LabelNotice, m.Message)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMessage, env)
	}
}

// Decode parses a wire array into its envelope. Unknown labels and shape
// mismatches fail with ErrUnknownMessage.
func Decode(data []byte) (Envelope, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("%w: not an array: %v", ErrUnknownMessage, err)
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrUnknownMessage)
	}
	var label string
	if err := json.Unmarshal(arr[0], &label); err != nil {
		return nil, fmt.Errorf("%w: non-string label", ErrUnknownMessage)
	}

	switch label {
	case LabelEvent:
		if len(arr) != 2 {
			return nil, arityError(label, 2, len(arr))
		}
		var ev event.Event
		if err := json.Unmarshal(arr[1], &ev); err != nil {
			return nil, fmt.Errorf("%w: event payload: %v", ErrUnknownMessage, err)
		}
		if !ev.Signed() {
			return nil, ErrUnsignedEvent
		}
		return EventMsg{Event: &ev}, nil

	case LabelReq:
		if len(arr) < 3 {
			return nil, arityError(label, 3, len(arr))
		}
		id, err := decodeString(arr[1])
		if err != nil {
			return nil, fmt.Errorf("%w: subscription id: %v", ErrUnknownMessage, err)
		}
		filters := make([]json.RawMessage, 0, len(arr)-2)
		for _, raw := range arr[2:] {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
				return nil, fmt.Errorf("%w: filter is not an object", ErrUnknownMessage)
			}
			filters = append(filters, raw)
		}
		return ReqMsg{SubscriptionID: id, Filters: filters}, nil

	case LabelClose, LabelEose:
		if len(arr) != 2 {
			return nil, arityError(label, 2, len(arr))
		}
		id, err := decodeString(arr[1])
		if err != nil {
			return nil, fmt.Errorf("%w: subscription id: %v", ErrUnknownMessage, err)
		}
		if label == LabelClose {
			return CloseMsg{SubscriptionID: id}, nil
		}
		return EoseMsg{SubscriptionID: id}, nil

	case LabelOk:
		if len(arr) != 4 {
			return nil, arityError(label, 4, len(arr))
		}
		id, err := decodeString(arr[1])
		if err != nil {
			return nil, fmt.Errorf("%w: event id: %v", ErrUnknownMessage, err)
		}
		var accepted bool
		if err := json.Unmarshal(arr[2], &accepted); err != nil {
			return nil, fmt.Errorf("%w: accepted flag: %v", ErrUnknownMessage, err)
		}
		msg, err := decodeString(arr[3])
		if err != nil {
			return nil, fmt.Errorf("%w: message: %v", ErrUnknownMessage, err)
		}
		return OkMsg{EventID: id, Accepted: accepted, Message: msg}, nil

	case LabelNotice:
		if len(arr) != 2 {
			return nil, arityError(label, 2, len(arr))
		}
		msg, err := decodeString(arr[1])
		if err != nil {
			return nil, fmt.Errorf("%w: message: %v", ErrUnknownMessage, err)
		}
		return NoticeMsg{Message: msg}, nil

	default:
		return nil, fmt.Errorf("%w: label %q", ErrUnknownMessage, label)
	}
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func arityError(label string, want, got int) error {
	return fmt.Errorf("%w: %s wants %d elements, got %d", ErrUnknownMessage, label, want, got)
}

// marshalArray emits a JSON array without HTML escaping, so event content
// survives encode/decode byte-comparably.
func marshalArray(parts ...any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(parts); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
