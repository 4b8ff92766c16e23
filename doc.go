/*
Package acs is a set of CWMP (TR-069) Auto Configuration Server libraries.

CPEs open sessions by POSTing SOAP envelopes over HTTP. The xmlutil
package tokenizes envelopes, message decodes and encodes the CWMP
methods, soap handles envelopes and protocol version negotiation, and
session implements the per-connection state machine deciding what to
send in reply to each request.

The server package binds sessions to HTTP connections, and cmd/acsd
runs it as a daemon configured from YAML, storing reported parameters
in SQLite.

See the session sub-directory for more information about Session objects
and Handler implementations.
*/
package acs
