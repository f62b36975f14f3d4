package resp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/publish/http/compress"
	"github.com/xy-planning-network/publish/logger"
	"github.com/xy-planning-network/publish/observability"
)

// A Response accumulates content for a single request and writes it once handlers are done.
//
// A Response is not safe for concurrent use.
type Response struct {
	*Buffer
	*Metadata

	doer *Responder
}

// Push stores content for the handler of the app.
// Pushing to the same app and handler again overwrites the content.
func (r *Response) Push(appID, handlerID string, content any) *Response {
	r.Buffer.Push(appID, handlerID, content)
	return r
}

// Write renders the Response in the Format negotiated for ctx
// and writes the head and then the body to ctx.Response().
//
// The head is written at most once, no matter how often Write is called;
// if ctx.Response() reports the head as sent, it is not written again.
//
// When rendering HTML fails, Write writes a head with http.StatusInternalServerError,
// no body, and returns an error wrapping ErrTransform.
// If the Responder was configured WithSilentTransformErrors,
// the head is written unchanged and no error returns.
func (r *Response) Write(ctx Context) error {
	t := ctx.Response()
	if t == nil {
		return fmt.Errorf("%w: no transport", ErrMissingData)
	}

	n := Negotiate(ctx)
	s, err := r.stream(ctx, n)
	if err != nil {
		lc := &logger.LogContext{
			Error:   err,
			Request: ctx.Request(),
			Data:    map[string]any{"format": n.Format.String(), "stylesheet": ctx.Route().Stylesheet},
		}

		if r.doer.silentTransformErrors && errors.Is(err, ErrTransform) {
			r.doer.logger.Warn("cannot render response, sending no body", lc)
			r.WriteHead(ctx, n)
			observability.ObserveResponse(n.Format.String(), n.Encoding.String(), r.StatusCode(), 0)
			return nil
		}

		r.doer.logger.Error("cannot render response", lc)

		// NOTE(dlk): there is no body to compress
		n.Encoding = compress.Identity
		r.SetStatusCode(http.StatusInternalServerError)
		r.WriteHead(ctx, n)
		observability.ObserveResponse(n.Format.String(), n.Encoding.String(), r.StatusCode(), 0)
		return err
	}

	if !r.WriteHead(ctx, n) {
		r.doer.logger.Debug("head already sent, writing body only", &logger.LogContext{Request: ctx.Request()})
	}

	if err := r.WriteContent(ctx, s, n.Encoding); err != nil {
		return err
	}

	observability.ObserveResponse(n.Format.String(), n.Encoding.String(), r.StatusCode(), len(s.Bytes()))
	return nil
}

// WriteHead flushes the Response's Metadata to ctx.Response(),
// reporting whether the head was written.
func (r *Response) WriteHead(ctx Context, n Negotiation) bool {
	return r.Flush(ctx.Response(), n, ctx.Cookies())
}

// WriteContent pipes s into ctx.Response(), compressed with enc.
func (r *Response) WriteContent(ctx Context, s *Stream, enc compress.Encoding) error {
	w, err := compress.NewWriter(enc, ctx.Response())
	if err != nil {
		return err
	}

	if _, err := s.Pipe(w); err != nil {
		return fmt.Errorf("cannot write %s body: %w", s.Format(), err)
	}

	return nil
}

// Stream renders the Response in the Format negotiated for ctx without writing anything.
func (r *Response) Stream(ctx Context) (*Stream, error) {
	return r.stream(ctx, Negotiate(ctx))
}

func (r *Response) stream(ctx Context, n Negotiation) (*Stream, error) {
	src := Source{Buffer: r.Buffer, Sync: n.Sync}
	if n.Format == HTML {
		src.HTML = r.doer.htmlSource(ctx)
	}

	return n.Format.Stream(src)
}
