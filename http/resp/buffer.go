package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var _ json.Marshaler = (*Buffer)(nil)

// A Buffer holds the content handlers produce, keyed first by application then by handler.
//
// Both levels keep the order keys were first pushed in.
// The zero value is ready to use.
type Buffer struct {
	apps  []*appContent
	index map[string]*appContent
}

type appContent struct {
	id       string
	handlers []string
	content  map[string]any
}

// NewBuffer constructs an empty *Buffer.
func NewBuffer() *Buffer {
	return &Buffer{index: make(map[string]*appContent)}
}

// Push stores content for the handler of the app.
// Pushing to the same app and handler again overwrites the content in place.
func (b *Buffer) Push(appID, handlerID string, content any) *Buffer {
	if b.index == nil {
		b.index = make(map[string]*appContent)
	}

	app, ok := b.index[appID]
	if !ok {
		app = &appContent{id: appID, content: make(map[string]any)}
		b.index[appID] = app
		b.apps = append(b.apps, app)
	}

	if _, ok := app.content[handlerID]; !ok {
		app.handlers = append(app.handlers, handlerID)
	}
	app.content[handlerID] = content

	return b
}

// Get retrieves the content pushed for the handler of the app.
func (b *Buffer) Get(appID, handlerID string) (any, bool) {
	app, ok := b.index[appID]
	if !ok {
		return nil, false
	}

	content, ok := app.content[handlerID]
	return content, ok
}

// Apps lists app IDs in the order they were first pushed.
func (b *Buffer) Apps() []string {
	ids := make([]string, len(b.apps))
	for i, app := range b.apps {
		ids[i] = app.id
	}
	return ids
}

// Len counts the pieces of content across all apps.
func (b *Buffer) Len() int {
	var n int
	for _, app := range b.apps {
		n += len(app.handlers)
	}
	return n
}

// Flatten lists all content, app by app and handler by handler, dropping the keys.
func (b *Buffer) Flatten() []any {
	flat := make([]any, 0, b.Len())
	for _, app := range b.apps {
		for _, h := range app.handlers {
			flat = append(flat, app.content[h])
		}
	}
	return flat
}

// Nested returns b as is, a mapping of apps to mappings of handlers to content.
func (b *Buffer) Nested() *Buffer { return b }

// each calls fn for every app with its handlers in order.
func (b *Buffer) each(fn func(appID string, handlers []string, content map[string]any) error) error {
	for _, app := range b.apps {
		if err := fn(app.id, app.handlers, app.content); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes b as a JSON object of JSON objects, keeping insertion order.
//
// MarshalJSON implements [json.Marshaler].
func (b *Buffer) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, app := range b.apps {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, app.id); err != nil {
			return nil, err
		}

		buf.WriteByte('{')
		for j, h := range app.handlers {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONKey(&buf, h); err != nil {
				return nil, err
			}

			val, err := json.Marshal(app.content[h])
			if err != nil {
				return nil, fmt.Errorf("cannot encode %s.%s: %w", app.id, h, err)
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
