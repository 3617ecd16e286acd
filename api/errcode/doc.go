// Package errcode defines the error codes of the digest service HTTP API
// and serves them in JSON envelopes. An ErrorCode is identified globally by
// a string value, all uppercase by convention. When an ErrorCode is
// registered, a value unique to the process is assigned, which can be used
// for identity tests.
//
// Each error is registered with Register, which takes a group name and an
// ErrorDescriptor and returns the ErrorCode. WithArgs fills the %s
// substitutions of the descriptor's message and WithDetail attaches any
// additional information for the client; both return an Error.
//
// Responses carry a list of errors:
//
//	{"errors": [{"code": "DIGEST_INVALID", "message": "...", "detail": ...}]}
package errcode
