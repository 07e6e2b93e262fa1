package common

// AuthorizationHeaderName is the HTTP header carrying the opaque session
// token on authenticated requests.
const AuthorizationHeaderName = "Authorization"
