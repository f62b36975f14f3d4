/*
Package ranger initializes and manages a publisher with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].

[*Ranger.Guide] begins the publisher's web server.
By default, [*Ranger.Guide] listens on [DefaultAddr] (:3000),
assuming a reverse proxy terminates TLS in front of it.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed in with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a publisher through environment variables
and by passing a [RangerOption] to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - ENVIRONMENT: the environment the application is running in; cf. [publish.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PUBLISH_ADDR: the address the application should listen on; default: :3000
  - PUBLISH_BASE_PATH: the directory holding templates/ and lib/; default: .
  - PUBLISH_CORS_ORIGIN: the origin allowed to read responses from a browser; default: none
  - PUBLISH_METRICS_PATH: the path prometheus metrics are served at; default: /metrics
  - PUBLISH_ROUTES: the YAML routes file, relative to PUBLISH_BASE_PATH; default: routes.yaml
  - PUBLISH_SILENT_TRANSFORM_ERRORS: whether HTML rendering failures respond as if nothing went wrong; default: false
  - PUBLISH_THEME: the theme stylesheets are resolved for; default: default
  - SAXON_JAR: the Saxon jar applying stylesheets; default: PUBLISH_BASE_PATH/lib/saxon/saxon9he.jar
  - SENTRY_DSN: the DSN errors are reported to; default: none
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idiling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 10s
  - TRANSFORM_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for applying a stylesheet; default: 5s
*/
package ranger
