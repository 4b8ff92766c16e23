/*
Package xmlutil contains the XML scanner used to read CWMP envelopes.

Parse performs a single left to right pass over a document and builds a
tree of Element values. Attribute lists are kept raw on each Element and
only parsed on demand, via Element.Attributes or ParseAttrs. Character
data is also kept raw; DecodeEntities and EncodeEntities convert between
raw and plain text.
*/
package xmlutil
