package resp

import (
	"strings"

	"github.com/xy-planning-network/publish/http/compress"
)

// A Format is one of the wire representations a Response renders into.
type Format string

const (
	JSON Format = "json"
	XML  Format = "xml"
	HTML Format = "html"
	Text Format = "text"
)

func (f Format) String() string { return string(f) }

// A Negotiation is what a Response settles on for a single Write.
type Negotiation struct {
	Format   Format
	Sync     bool
	Encoding compress.Encoding
}

// Negotiate derives the Negotiation for ctx from its route and its request's Accept-Encoding header.
func Negotiate(ctx Context) Negotiation {
	route := ctx.Route()

	var accept string
	if r := ctx.Request(); r != nil {
		accept = strings.Join(r.Header.Values("Accept-Encoding"), ", ")
	}

	return Negotiation{
		Format:   ResolveFormat(route),
		Sync:     route.Sync,
		Encoding: ResolveEncoding(accept),
	}
}

// ResolveFormat returns the Format the route is configured with.
// Any type other than "xml", "html" or "json" is Text.
func ResolveFormat(route Route) Format {
	switch route.Type {
	case "xml":
		return XML
	case "html":
		return HTML
	case "json":
		return JSON
	default:
		return Text
	}
}

// ContentType returns the media type for f.
// Any Format other than XML, HTML or JSON is text/plain.
func ContentType(f Format) string {
	if f == XML {
		return "application/xml"
	}
	if f == HTML {
		return "text/html"
	}
	if f == JSON {
		return "application/json"
	}
	return "text/plain"
}

// ResolveEncoding picks the transport encoding from an Accept-Encoding header value.
//
// The value is searched for the tokens as plain substrings; quality values are not parsed.
// gzip wins over deflate whenever both appear.
// Without either, the encoding is identity.
func ResolveEncoding(accept string) compress.Encoding {
	enc := compress.Identity
	if strings.Contains(accept, "deflate") {
		enc = compress.Deflate
	}
	if strings.Contains(accept, "gzip") {
		enc = compress.Gzip
	}
	return enc
}
