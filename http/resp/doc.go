/*
The resp package collects the fragments handlers produce for a request
and publishes them as a single HTTP response.

Handlers push content into a [Response] keyed by application and handler.
Calling [*Response.Write] then:
  - negotiates the [Format] from the route and the [compress.Encoding] from Accept-Encoding
  - renders the buffered content as JSON, XML, HTML (XML through an XSLT stylesheet) or plain text
  - flushes the status code and headers, once
  - pipes the rendered [Stream] through the negotiated compression into the transport

A [Responder] holds the application-wide configuration every Response shares.
*/
package resp
