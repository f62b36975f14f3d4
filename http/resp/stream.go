package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xy-planning-network/publish/http/xslt"
	"github.com/xy-planning-network/publish/observability"
)

// A Stream is a rendered response body that can be piped exactly once.
type Stream struct {
	format  Format
	payload []byte
	piped   bool
}

func newStream(f Format, payload []byte) *Stream {
	return &Stream{format: f, payload: payload}
}

// Bytes returns the payload without consuming s.
func (s *Stream) Bytes() []byte { return s.payload }

// Format returns the Format s was rendered in.
func (s *Stream) Format() Format { return s.format }

// Pipe writes the whole payload to sink in one write, then closes sink to mark the end of the stream.
//
// Pipe returns sink so calls can be chained.
// Piping s a second time writes nothing and returns ErrConsumed.
func (s *Stream) Pipe(sink io.WriteCloser) (io.WriteCloser, error) {
	if s.piped {
		return sink, ErrConsumed
	}
	s.piped = true

	if len(s.payload) > 0 {
		if _, err := sink.Write(s.payload); err != nil {
			return sink, err
		}
	}

	return sink, sink.Close()
}

// A Resolver locates the stylesheet for a theme.
type Resolver interface {
	Resolve(theme, sheet string) (string, error)
}

// A Source is what a Format renders a Stream from.
type Source struct {
	Buffer *Buffer

	// Sync keeps app and handler keys when rendering JSON.
	Sync bool

	// HTML configures rendering HTML.
	HTML HTMLSource
}

// An HTMLSource is what rendering HTML requires on top of the XML.
type HTMLSource struct {
	Context     context.Context
	Theme       string
	Stylesheet  string
	Resolver    Resolver
	Transformer xslt.Transformer
	Timeout     time.Duration
}

// Stream renders src in f.
// Any Format other than XML, HTML or JSON renders Text.
func (f Format) Stream(src Source) (*Stream, error) {
	if src.Buffer == nil {
		src.Buffer = NewBuffer()
	}

	switch f {
	case XML:
		return streamXML(src.Buffer)
	case HTML:
		return streamHTML(src.Buffer, src.HTML)
	case JSON:
		return streamJSON(src.Buffer, src.Sync)
	default:
		return streamText(src.Buffer)
	}
}

// streamJSON renders the nested buffer when sync and the flattened buffer otherwise.
func streamJSON(b *Buffer, sync bool) (*Stream, error) {
	var v any = b.Flatten()
	if sync {
		v = b.Nested()
	}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("cannot encode json: %w", err)
	}

	return newStream(JSON, buf.Bytes()), nil
}

func streamXML(b *Buffer) (*Stream, error) {
	lines, err := XMLLines(b)
	if err != nil {
		return nil, err
	}

	return newStream(XML, []byte(strings.Join(lines, "\n"))), nil
}

// streamHTML applies the route's stylesheet, resolved for the theme, to the XML rendering of b.
//
// Every failure wraps ErrTransform.
func streamHTML(b *Buffer, src HTMLSource) (*Stream, error) {
	if src.Resolver == nil || src.Transformer == nil {
		return nil, fmt.Errorf("%w: %w: no resolver or transformer", ErrTransform, ErrBadConfig)
	}

	x, err := streamXML(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	sheet, err := src.Resolver.Resolve(src.Theme, src.Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	ctx := src.Context
	if ctx == nil {
		ctx = context.Background()
	}

	timeout := src.Timeout
	if timeout <= 0 {
		timeout = xslt.DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := src.Transformer.Transform(ctx, sheet, bytes.NewReader(x.Bytes()))
	observability.TransformDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.TransformErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	return newStream(HTML, out), nil
}

// streamText renders each piece of content on its own line.
func streamText(b *Buffer) (*Stream, error) {
	flat := b.Flatten()
	lines := make([]string, len(flat))
	for i, v := range flat {
		lines[i] = textValue(v)
	}

	return newStream(Text, []byte(strings.Join(lines, "\n"))), nil
}

// textValue writes strings as is, other scalars in their default format
// and anything else as JSON.
func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
