// Package server is the HTTP front end of the ACS.
//
// Each CPE connection is bound to one session.Session, created on the
// connection's first request and dropped when the session closes or the
// connection does. Request bodies are decompressed and converted to
// UTF-8 before being passed to the session, and replies are compressed
// with the request's Content-Encoding.
package server
