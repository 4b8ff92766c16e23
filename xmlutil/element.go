package xmlutil

import (
	"strings"

	"github.com/andaru/acs/cwmperr"
)

// Element is a node of a parsed XML document.
//
// Attrs holds the raw attribute list as written in the opening tag;
// call Attributes to parse it. Text is populated for leaf elements only
// and holds the raw (entity encoded) character data.
type Element struct {
	Name      string
	Namespace string
	LocalName string
	Attrs     string
	Text      string
	BodyIndex int
	Children  []*Element
}

// Attributes parses and returns the element's attributes
func (e *Element) Attributes() ([]Attribute, error) { return ParseAttrs(e.Attrs) }

// Child returns the first child element with the given local name, or nil
func (e *Element) Child(localName string) *Element {
	for _, c := range e.Children {
		if c.LocalName == localName {
			return c
		}
	}
	return nil
}

// ChildText returns the entity decoded text of the first child element
// with the given local name, or the empty string.
func (e *Element) ChildText(localName string) string {
	if c := e.Child(localName); c != nil {
		return DecodeEntities(c.Text)
	}
	return ""
}

// scanState is the tokenizer state carried between characters
type scanState struct {
	quote    byte // open quote character, 0 when outside a quoted value
	quoteAt  int
	tagAt    int // offset of the '<' of the open tag, -1 when outside a tag
	colonAt  int // offset of the first ':' in the open tag, -1 if none
	spaceAt  int // offset of the first whitespace in the open tag, -1 if none
	textFrom int // offset where the current element's body starts
}

func (st *scanState) resetTag() { st.tagAt, st.colonAt, st.spaceAt = -1, -1, -1 }

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
)

// Parse scans s in a single pass and returns a synthetic root element
// whose children are the document's top-level elements.
//
// XML declarations, processing instructions, DOCTYPE declarations and
// comments are skipped. CDATA sections are not supported. Any syntax
// error is returned as a *cwmperr.Error of kind KindParse carrying the
// byte offset of the problem.
func Parse(s string) (*Element, error) {
	root := &Element{}
	stack := []*Element{root}
	st := scanState{}
	st.resetTag()

	for i := 0; i < len(s); i++ {
		c := s[i]

		if st.quote != 0 {
			if c == st.quote {
				st.quote = 0
			}
			continue
		}

		if st.tagAt < 0 {
			if c != '<' {
				continue
			}
			switch {
			case strings.HasPrefix(s[i:], commentOpen):
				end := strings.Index(s[i+len(commentOpen):], commentClose)
				if end < 0 {
					return nil, cwmperr.Parse(i, "unclosed comment")
				}
				i += len(commentOpen) + end + len(commentClose) - 1
			case strings.HasPrefix(s[i:], cdataOpen):
				return nil, cwmperr.Parse(i, "CDATA sections are not supported")
			default:
				st.tagAt = i
			}
			continue
		}

		switch c {
		case '"', '\'':
			st.quote, st.quoteAt = c, i
		case ':':
			if st.colonAt < 0 && st.spaceAt < 0 {
				st.colonAt = i
			}
		case ' ', '\t', '\n', '\r':
			if st.spaceAt < 0 {
				st.spaceAt = i
			}
		case '<':
			return nil, cwmperr.Parse(i, "unexpected '<' inside tag")
		case '>':
			var err error
			if stack, err = st.closeTag(s, i, stack); err != nil {
				return nil, err
			}
			st.resetTag()
		}
	}

	switch {
	case st.quote != 0:
		return nil, cwmperr.Parse(st.quoteAt, "unmatched quote")
	case st.tagAt >= 0:
		return nil, cwmperr.Parse(st.tagAt, "unclosed tag")
	case len(stack) > 1:
		return nil, cwmperr.Parse(len(s), "unclosed element "+stack[len(stack)-1].Name)
	}
	return root, nil
}

// closeTag classifies and handles the tag ending at offset end
func (st *scanState) closeTag(s string, end int, stack []*Element) ([]*Element, error) {
	start := st.tagAt
	if end-start < 2 {
		return stack, cwmperr.Parse(start, "empty tag")
	}

	switch s[start+1] {
	case '?', '!':
		return stack, nil
	case '/':
		name := strings.TrimSpace(s[start+2 : end])
		if len(stack) == 1 {
			return stack, cwmperr.Parse(start, "unexpected closing tag "+name)
		}
		top := stack[len(stack)-1]
		if top.Name != name {
			return stack, cwmperr.Parse(start, "closing tag "+name+" does not match "+top.Name)
		}
		if len(top.Children) == 0 {
			top.Text = s[top.BodyIndex:start]
		}
		return stack[:len(stack)-1], nil
	}

	selfClosing := s[end-1] == '/'
	nameEnd := end
	if selfClosing {
		nameEnd--
	}
	attrs := ""
	if st.spaceAt >= 0 && st.spaceAt < nameEnd {
		attrs = strings.TrimSpace(s[st.spaceAt:nameEnd])
		nameEnd = st.spaceAt
	}
	name := s[start+1 : nameEnd]
	if name == "" {
		return stack, cwmperr.Parse(start, "missing element name")
	}

	e := &Element{Name: name, LocalName: name, Attrs: attrs, BodyIndex: end + 1}
	if st.colonAt >= 0 && st.colonAt < nameEnd {
		e.Namespace = s[start+1 : st.colonAt]
		e.LocalName = s[st.colonAt+1 : nameEnd]
	}

	parent := stack[len(stack)-1]
	parent.Children = append(parent.Children, e)
	if !selfClosing {
		stack = append(stack, e)
	}
	return stack, nil
}
