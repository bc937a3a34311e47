package store

import (
	"context"
	"encoding/json"
)

// Pointer locates the pinned planning message.
type Pointer struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// IsZero reports whether the pointer is missing either half.
func (p Pointer) IsZero() bool {
	return p.ChannelID == "" || p.MessageID == ""
}

// UnmarshalJSON accepts IDs written as strings or as bare numbers, the
// latter being how earlier deployments stored Discord snowflakes.
func (p *Pointer) UnmarshalJSON(data []byte) error {
	var aux struct {
		ChannelID snowflake `json:"channel_id"`
		MessageID snowflake `json:"message_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ChannelID = string(aux.ChannelID)
	p.MessageID = string(aux.MessageID)
	return nil
}

type snowflake string

func (s *snowflake) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = snowflake(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = snowflake(n.String())
	return nil
}

// PointerStore is the durable record of the pinned message.
type PointerStore struct {
	doc Document[*Pointer]
}

// NewPointerStore wraps a document holding the pointer.
func NewPointerStore(doc Document[*Pointer]) *PointerStore {
	return &PointerStore{doc: doc}
}

// Load returns the configured pointer. ok is false when no live view is
// configured, including a stored but incomplete pointer.
func (s *PointerStore) Load(ctx context.Context) (Pointer, bool, error) {
	p, ok, err := s.doc.Load(ctx)
	if err != nil || !ok || p == nil || p.IsZero() {
		return Pointer{}, false, err
	}
	return *p, true, nil
}

// Save overwrites the pointer.
func (s *PointerStore) Save(ctx context.Context, p Pointer) error {
	return s.doc.Save(ctx, &p)
}

// Clear forgets the pinned message.
func (s *PointerStore) Clear(ctx context.Context) error {
	return s.doc.Save(ctx, nil)
}
