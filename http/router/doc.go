/*
Package router defines how requests reach the content a publisher serves.

A [Route] pairs a path and an HTTP method with the [Handler]s producing its content
and with how that content renders: its type, whether JSON keeps app and handler keys,
and the stylesheet applied for HTML.
[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

When a request matches a Route, the Router runs any middlewares added to the Route in the order they appear,
calls each Handler in the order declared, pushes what each returns into a [resp.Response],
and writes that Response.
A Handler returning an error is logged and the Response is written with http.StatusInternalServerError.

It is often the case that many routes share identical middleware stacks.
OnEveryRequest and HandleRoutes provide conveniences for registering many logically associated Routes
in a single call.

Routes can also be described in YAML and decoded with [ParseRoutes].
*/
package router
