package xmlutil

import (
	"testing"

	"github.com/andaru/acs/cwmperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	a := assert.New(t)
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!-- envelope follows -->
<soap:Envelope xmlns:soap="urn:soap"><soap:Body><cwmp:Inform a='1'><Name>x &amp; y</Name><Empty/><Spaced  b="2" /></cwmp:Inform></soap:Body></soap:Envelope>`

	root, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	env := root.Children[0]
	a.Equal("soap:Envelope", env.Name)
	a.Equal("soap", env.Namespace)
	a.Equal("Envelope", env.LocalName)
	a.Equal(`xmlns:soap="urn:soap"`, env.Attrs)
	a.Equal("", env.Text)

	inform := env.Child("Body").Child("Inform")
	require.NotNil(t, inform)
	a.Equal("cwmp", inform.Namespace)
	a.Equal("a='1'", inform.Attrs)
	require.Len(t, inform.Children, 3)
	a.Equal("x &amp; y", inform.Children[0].Text)
	a.Equal("x & y", inform.ChildText("Name"))
	a.Equal("Empty", inform.Children[1].Name)
	a.Equal("", inform.Children[1].Attrs)
	a.Equal("Spaced", inform.Children[2].Name)
	a.Equal(`b="2"`, inform.Children[2].Attrs)
	a.Nil(inform.Child("Missing"))
	a.Equal("", inform.ChildText("Missing"))
}

func TestParseText(t *testing.T) {
	for _, tc := range []struct {
		name      string
		doc       string
		text      string
		attrs     string
		bodyIndex int
	}{
		{name: "simple", doc: `<a>hi</a>`, text: "hi", bodyIndex: 3},
		{name: "apostrophe in text", doc: `<a>don't</a>`, text: "don't", bodyIndex: 3},
		{name: "gt in attribute", doc: `<a b="x>y">t</a>`, text: "t", attrs: `b="x>y"`, bodyIndex: 11},
		{name: "spaced close", doc: `<a>t</a >`, text: "t", bodyIndex: 3},
		{name: "comment in leaf", doc: `<a><!-- <b> --></a>`, text: "<!-- <b> -->", bodyIndex: 3},
		{name: "empty", doc: `<a></a>`, bodyIndex: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			root, err := Parse(tc.doc)
			if a.NoError(err) && a.Len(root.Children, 1) {
				e := root.Children[0]
				a.Equal(tc.text, e.Text)
				a.Equal(tc.attrs, e.Attrs)
				a.Equal(tc.bodyIndex, e.BodyIndex)
				a.Empty(e.Children)
			}
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "   \n", `<?xml version="1.0"?>`} {
		root, err := Parse(doc)
		if assert.NoError(t, err) {
			assert.Empty(t, root.Children)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		doc     string
		offset  int
		message string
	}{
		{name: "unmatched quote", doc: `<a b="1>`, offset: 5, message: "unmatched quote"},
		{name: "unclosed tag", doc: `<a><b`, offset: 3, message: "unclosed tag"},
		{name: "mismatched close", doc: `<a></b>`, offset: 3, message: "closing tag b does not match a"},
		{name: "unclosed element", doc: `<a><b></b>`, offset: 10, message: "unclosed element a"},
		{name: "stray close", doc: `</a>`, offset: 0, message: "unexpected closing tag a"},
		{name: "cdata", doc: `<a><![CDATA[x]]></a>`, offset: 3, message: "CDATA sections are not supported"},
		{name: "unclosed comment", doc: `<a><!-- x`, offset: 3, message: "unclosed comment"},
		{name: "empty tag", doc: `<a><></a>`, offset: 3, message: "empty tag"},
		{name: "lt in tag", doc: `<a <b>`, offset: 3, message: "unexpected '<' inside tag"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			root, err := Parse(tc.doc)
			a.Nil(root)
			var perr *cwmperr.Error
			if a.ErrorAs(err, &perr) {
				a.Equal(cwmperr.KindParse, perr.Kind)
				a.Equal(tc.offset, perr.Offset)
				a.Equal(tc.message, perr.Message)
			}
		})
	}
}
