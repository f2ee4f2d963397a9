// Package entry is the social text record passed between fetch, clean and aggregation
package entry

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	perr "artisantrend/internal/platform/errors"
)

// Kind separates posts from comments
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// legacy ids for comments carry this prefix
const commentPrefix = "comment_"

// Entry is one post or comment about a product
type Entry struct {
	ID        string
	Product   string
	Text      string
	TextOK    bool // false when the source text was not a string
	Kind      Kind
	CreatedAt string
}

// New builds a well-typed entry with a lowercased product
func New(id, product, text string, kind Kind, createdAt string) Entry {
	return Entry{
		ID:        id,
		Product:   strings.ToLower(strings.TrimSpace(product)),
		Text:      text,
		TextOK:    true,
		Kind:      kind,
		CreatedAt: createdAt,
	}
}

// IsComment reports the kind decided at ingestion
func (e Entry) IsComment() bool { return e.Kind == KindComment }

type wire struct {
	ID        json.RawMessage `json:"id"`
	Product   any             `json:"product"`
	Text      json.RawMessage `json:"text"`
	Type      string          `json:"type,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
}

type out struct {
	ID        string `json:"id"`
	Product   string `json:"product"`
	Text      any    `json:"text"`
	Type      Kind   `json:"type"`
	CreatedAt string `json:"created_at,omitempty"`
}

// MarshalJSON writes the raw data file shape
func (e Entry) MarshalJSON() ([]byte, error) {
	o := out{ID: e.ID, Product: e.Product, Type: e.Kind, CreatedAt: e.CreatedAt}
	if e.TextOK {
		o.Text = e.Text
	}
	return json.Marshal(o)
}

// UnmarshalJSON tolerates non-string text and ids and settles Kind once
func (e *Entry) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*e = Entry{CreatedAt: w.CreatedAt}
	e.ID = scalar(w.ID)
	if s, ok := w.Product.(string); ok {
		e.Product = s
	}
	var text string
	if t := bytes.TrimSpace(w.Text); len(t) > 0 && !bytes.Equal(t, []byte("null")) && json.Unmarshal(t, &text) == nil {
		e.Text, e.TextOK = text, true
	}
	e.Kind = kindOf(w.Type, e.ID)
	return nil
}

func kindOf(typ, id string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(typ))) {
	case KindPost:
		return KindPost
	case KindComment:
		return KindComment
	}
	if strings.HasPrefix(id, commentPrefix) {
		return KindComment
	}
	return KindPost
}

// scalar renders a json string or number id as text; anything else is empty
func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// Decode reads a json array of entries
func Decode(r io.Reader) ([]Entry, error) {
	var es []Entry
	if err := json.NewDecoder(r).Decode(&es); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "entry: decode")
	}
	return es, nil
}
