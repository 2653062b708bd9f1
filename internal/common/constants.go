package common

// AuthorizationHeaderName is the HTTP header used to carry the API key on
// outbound requests to the remote service.
const AuthorizationHeaderName = "Authorization"
