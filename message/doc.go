/*
Package message holds the CWMP method table.

Every RPC body is a Go type implementing Method. The four sealed
interfaces CpeRequest, CpeResponse, AcsRequest and AcsResponse group the
methods by direction, so a type switch over one of them is exhaustive
over a fixed set of variants. CpeFault carries a SOAP Fault.

DecodeCPE and DecodeACS turn a parsed method element into a Method, and
Encode renders a Method back to its XML body fragment using the cwmp,
soap-env and soap-enc prefixes declared on the envelope.
*/
package message
