/*
Package transport provides the CWMP HTTP body layer.

CPEs may compress request bodies with gzip or deflate and may send them
in any character set. The Reader and Writer types undo and redo the
content encoding, while DecodeCharset turns the raw body into a Go
string for the XML scanner. An ACS replies using the same content
encoding the CPE used.
*/
package transport
