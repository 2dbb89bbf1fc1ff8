// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "all specials", input: `&<>"'`, want: "&amp;&lt;&gt;&quot;&#039;"},
		{name: "existing entity escaped once", input: "&amp;", want: "&amp;amp;"},
		{name: "mixed", input: "5 > 3 & true", want: "5 &gt; 3 &amp; true"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.input))
		})
	}
}

func TestToParagraphHTML(t *testing.T) {
	assert.Equal(t, "<p>Hello</p><p>World</p>", ToParagraphHTML("Hello\nWorld"))
	assert.Equal(t, "<p>a</p><p>b</p>", ToParagraphHTML("  a  \r\n\n\n b "))
	assert.Equal(t, "", ToParagraphHTML(" \n\t\n"))
	assert.Equal(t, "<p>&lt;b&gt;</p>", ToParagraphHTML("<b>"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		fallback string
		want     string
	}{
		{name: "nil uses fallback", value: nil, fallback: "fb", want: "fb"},
		{name: "empty string uses fallback", value: "", fallback: "fb", want: "fb"},
		{name: "blank string uses fallback", value: "  \n ", fallback: "fb", want: "fb"},
		{name: "plain text lines", value: "Hello\nWorld", want: "<p>Hello</p><p>World</p>"},
		{name: "plain text escaped", value: "5 > 3 & true", want: "<p>5 &gt; 3 &amp; true</p>"},
		{name: "html passthrough", value: "  <p>Hi</p>  ", want: "<p>Hi</p>"},
		{name: "script passthrough", value: "<script>x</script>", want: "<script>x</script>"},
		{name: "json content field", value: `{"content":"<p>Hi</p>"}`, want: "<p>Hi</p>"},
		{name: "json html field", value: `{"html":"Line"}`, want: "<p>Line</p>"},
		{name: "json notes field", value: `{"notes":"a\nb"}`, want: "<p>a</p><p>b</p>"},
		{name: "content wins over html", value: `{"html":"<b>h</b>","content":"<i>c</i>"}`, want: "<i>c</i>"},
		{
			name:  "document tree",
			value: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hello"}]},{"type":"paragraph","content":[{"type":"text","text":"World"}]}]}`,
			want:  "<p>Hello World</p>",
		},
		{
			name:  "document tree escapes text",
			value: `{"content":[{"text":"a < b"}]}`,
			want:  "<p>a &lt; b</p>",
		},
		{name: "json without text keeps raw input", value: `{"foo":1}`, want: "<p>{&quot;foo&quot;:1}</p>"},
		{name: "json blank content keeps raw input", value: `{"content":"  "}`, want: "<p>{&quot;content&quot;:&quot;  &quot;}</p>"},
		{name: "json number", value: "123", want: "<p>123</p>"},
		{name: "json string", value: `"quoted"`, want: "<p>quoted</p>"},
		{name: "json array", value: `[1,2]`, want: "<p>[1,2]</p>"},
		{name: "malformed json", value: `{"content":`, want: "<p>{&quot;content&quot;:</p>"},
		{name: "nested json string", value: `"{\"content\":\"x\"}"`, want: "<p>x</p>"},
		{name: "decoded object", value: map[string]any{"content": "x"}, want: "<p>x</p>"},
		{name: "decoded object without text", value: map[string]any{"id": 1.0}, fallback: "fb", want: "fb"},
		{name: "number uses fallback", value: 42, fallback: "fb", want: "fb"},
		{name: "bool uses fallback", value: true, fallback: "fb", want: "fb"},
		{name: "nil string pointer", value: (*string)(nil), fallback: "fb", want: "fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.value, tt.fallback))
		})
	}
}

func TestParseKinds(t *testing.T) {
	assert.Equal(t, KindEmpty, Parse(nil).Kind)
	assert.Equal(t, KindHTML, Parse("<div/>").Kind)
	assert.Equal(t, KindPlainText, Parse("text").Kind)
	assert.Equal(t, KindDocument, Parse(`{"content":[{"text":"t"}]}`).Kind)
	assert.Equal(t, KindHTML, Parse(`{"content":"<p>x</p>"}`).Kind)
	assert.Equal(t, "document", KindDocument.String())
}

func TestNormalizeNeverReturnsEmptyForText(t *testing.T) {
	inputs := []string{"x", "{", "}", "null", "false", "0", `{"a":{"b":[]}}`, "[]", `""`, " a"}
	for _, in := range inputs {
		assert.NotEmpty(t, Normalize(in, ""), "input %q", in)
	}
}

func TestSnippet(t *testing.T) {
	long := "<p>" + strings.Repeat("a", 200) + "</p>"
	got := Snippet(long, DefaultSnippetLength)
	assert.Len(t, got, 143)
	assert.True(t, strings.HasSuffix(got, "..."))

	tests := []struct {
		name string
		html string
		max  int
		want string
	}{
		{name: "empty", html: "", max: 140, want: ""},
		{name: "only tags", html: "<br/><hr>", max: 140, want: ""},
		{name: "tags become spaces", html: "<p>Hello</p><p>World</p>", max: 140, want: "Hello World"},
		{name: "whitespace collapsed", html: "a \n\t b  c", max: 140, want: "a b c"},
		{name: "exact length kept", html: "abcde", max: 5, want: "abcde"},
		{name: "cut trims trailing space", html: "abc def", max: 4, want: "abc..."},
		{name: "mid-word cut", html: "abcdef", max: 3, want: "abc..."},
		{name: "runes not bytes", html: "ééééé", max: 2, want: "éé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snippet(tt.html, tt.max))
		})
	}
}
