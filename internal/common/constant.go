package common

// AccessTokenHeaderName is the dedicated header carrying a bearer token.
// It takes precedence over the Authorization header.
const AccessTokenHeaderName = "x-access-token"

// AuthorizationHeaderName and BearerPrefix describe the standard
// "Authorization: Bearer <token>" form.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)
