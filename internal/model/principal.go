package model

// Principal identifies the authenticated caller of a request.
type Principal struct {
	Subject string
	Role    string
}
