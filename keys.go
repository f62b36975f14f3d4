package publish

type Key string

const (
	// CookiesKey stashes the cookie jar collecting Set-Cookie values for a response.
	CookiesKey Key = "CookiesKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// RouteKey stashes the route configuration matched for an HTTP request.
	RouteKey Key = "RouteKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "publish context key: " + string(k)
}
