/*
Package publish holds the pieces shared across a publish app:
context keys, environment helpers and sentinel errors.

The rendering pipeline itself lives in [github.com/xy-planning-network/publish/http/resp].
*/
package publish
