// Package dsl 解析屏幕文档：meta、resources 以及若干 screen 段落。
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	screenLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		// 颜色必须先于 # 注释匹配
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:px|pt|mm|%|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[\[\]{},:;=]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(screenLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
		participle.UseLookahead(2),
	)
)

// Document is the root of a screen document.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one of meta, resources or screen.
type Section struct {
	Meta      *MetaSection      `parser:"  @@"`
	Resources *ResourcesSection `parser:"| @@"`
	Screen    *ScreenSection    `parser:"| @@"`
}

// Kind returns the keyword that opened the section.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.Screen != nil:
		return "screen"
	default:
		return "unknown"
	}
}

// MetaSection holds document information assignments (title, author, ...).
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// ResourcesSection declares fonts, colors and styles.
type ResourcesSection struct {
	Block *Block `parser:"'resources' @@"`
}

// ScreenSection describes one paginated screen: its name, header parameters
// (size, spacing, alignment) and the paragraphs it shows.
type ScreenSection struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Name   string         `parser:"'screen' @Ident"`
	Params []*Arg         `parser:"@@*"`
	Block  *Block         `parser:"@@"`
}

// Block is a braced list of statements separated by newlines or ';'.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement is an assignment, a command or a bare string.
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment is `key: value`.
type Assignment struct {
	Key   string `parser:"@Ident ':'"`
	Value *Value `parser:"Newline* @@"`
}

// Command is a keyword followed by arguments and an optional block, such as
// `text Body no-break { "..." }` or `color Accent = #fff`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Arg         `parser:"( '='? @@ )*"`
	Block *Block         `parser:"@@?"`
}

// TextLiteral is a string statement, usually paragraph text.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Arg is a single command or screen argument.
type Arg struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Word   string         `parser:"  @(Ident | Number | Color)"`
	Quoted *StringLiteral `parser:"| @String"`
}

// Value returns the argument text, unquoted for strings.
func (a *Arg) Value() string {
	if a == nil {
		return ""
	}
	if a.Quoted != nil {
		return string(*a.Quoted)
	}
	return a.Word
}

// Value is the right-hand side of an assignment.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	List   *ListValue     `parser:"| @@"`
	Ref    *string        `parser:"| @Ident"`
}

// ListValue is `[a, b]`; items may also be separated by newlines.
type ListValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( ',' | Newline )* )* ']'"`
}

// Text flattens a scalar value to its string form. Lists are joined with ", ".
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ref != nil:
		return *v.Ref
	case v.List != nil:
		return strings.Join(v.Strings(), ", ")
	default:
		return ""
	}
}

// Strings returns the non-empty items of a list, or the scalar as a single item.
func (v *Value) Strings() []string {
	if v == nil {
		return nil
	}
	if v.List == nil {
		if s := v.Text(); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(v.List.Values))
	for _, item := range v.List.Values {
		if s := item.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a document from r.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a document held in memory.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// Screens returns the screen sections in declaration order.
func (d *Document) Screens() []*ScreenSection {
	if d == nil {
		return nil
	}
	var out []*ScreenSection
	for _, section := range d.Sections {
		if section.Screen != nil {
			out = append(out, section.Screen)
		}
	}
	return out
}
