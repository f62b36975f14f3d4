package resp

import (
	"path"
	"sync"
	"time"

	"github.com/xy-planning-network/publish/http/stylesheet"
	"github.com/xy-planning-network/publish/http/xslt"
	"github.com/xy-planning-network/publish/logger"
)

const (
	responderFrames = 1

	// saxonJar is where the XSLT processor lives, relative to Settings.BasePath.
	saxonJar = "lib/saxon/saxon9he.jar"
)

// Responder maintains the configuration every Response shares.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// Each request handled then gets its own Response from NewResponse.
type Responder struct {
	logger logger.Logger

	// Applies stylesheets when rendering HTML.
	// When nil, a Saxon subprocess is run from beneath Settings.BasePath.
	transformer xslt.Transformer

	// Locates stylesheets when rendering HTML.
	// When nil, a *stylesheet.Resolver is kept for each Settings.BasePath.
	resolver Resolver

	// Upper bound for applying a stylesheet
	timeout time.Duration

	// Write nothing and report no error when rendering HTML fails.
	silentTransformErrors bool

	mu        sync.Mutex
	resolvers map[string]Resolver
	saxons    map[string]xslt.Transformer
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		timeout:   xslt.DefaultTimeout,
		resolvers: make(map[string]Resolver),
		saxons:    make(map[string]xslt.Transformer),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	return d
}

// NewResponse constructs an empty *Response with the status code http.StatusOK.
func (doer *Responder) NewResponse() *Response {
	return &Response{
		Buffer:   NewBuffer(),
		Metadata: NewMetadata(),
		doer:     doer,
	}
}

// htmlSource gathers what rendering HTML for ctx requires.
func (doer *Responder) htmlSource(ctx Context) HTMLSource {
	src := HTMLSource{
		Theme:       ctx.Site().Theme,
		Stylesheet:  ctx.Route().Stylesheet,
		Resolver:    doer.resolverFor(ctx.Settings().BasePath),
		Transformer: doer.transformerFor(ctx.Settings().BasePath),
		Timeout:     doer.timeout,
	}

	if r := ctx.Request(); r != nil {
		src.Context = r.Context()
	}

	return src
}

// resolverFor returns the Resolver configured on doer
// or the one kept for basePath.
func (doer *Responder) resolverFor(basePath string) Resolver {
	if doer.resolver != nil {
		return doer.resolver
	}

	doer.mu.Lock()
	defer doer.mu.Unlock()

	r, ok := doer.resolvers[basePath]
	if !ok {
		r = stylesheet.NewResolver(basePath, nil)
		doer.resolvers[basePath] = r
	}
	return r
}

// transformerFor returns the Transformer configured on doer
// or a Saxon running the jar beneath basePath.
func (doer *Responder) transformerFor(basePath string) xslt.Transformer {
	if doer.transformer != nil {
		return doer.transformer
	}

	doer.mu.Lock()
	defer doer.mu.Unlock()

	t, ok := doer.saxons[basePath]
	if !ok {
		t = xslt.NewSaxon(path.Join(basePath, saxonJar), doer.timeout)
		doer.saxons[basePath] = t
	}
	return t
}
