package xmlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "plain", want: "plain"},
		{in: "&quot;&amp;&apos;&lt;&gt;", want: `"&'<>`},
		{in: "&#65;&#x42;&#X43;", want: "ABC"},
		{in: "&#233;t&#xE9;", want: "été"},
		{in: "&nbsp; &bogus; & &#xZZ; &#;", want: "&nbsp; &bogus; & &#xZZ; &#;"},
		{in: "trailing &amp", want: "trailing &amp"},
		{in: "&amp;amp;", want: "&amp;"},
	} {
		t.Run(tc.in, func(t *testing.T) { assert.Equal(t, tc.want, DecodeEntities(tc.in)) })
	}
}

func TestEntitiesRoundTrip(t *testing.T) {
	for _, in := range []string{
		`"&'<>`,
		"user&name <admin>",
		"http://example.com/fw?a=1&b='2'",
		"no entities",
	} {
		t.Run(in, func(t *testing.T) {
			a := assert.New(t)
			enc := EncodeEntities(in)
			a.NotContains(enc, "<")
			a.Equal(in, DecodeEntities(enc))
		})
	}
	assert.Equal(t, "&quot;&amp;&apos;&lt;&gt;", EncodeEntities(`"&'<>`))
}
