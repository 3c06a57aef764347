package decl

import "fmt"

// Kind is the lexical class of a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Ident
	Int
	String

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Lt       // <
	Gt       // >
	Comma    // ,
	Semi     // ;
	Colon    // :
	PathSep  // ::
	Assign   // =
	Star     // *
	Arrow    // ->
	Minus    // -
	Bang     // !
	Hash     // #
	Amp      // &
	Dot      // .
)

var kindNames = [...]string{
	Invalid:  "invalid",
	EOF:      "EOF",
	Ident:    "ident",
	Int:      "int",
	String:   "string",
	LParen:   "(",
	RParen:   ")",
	LBrace:   "{",
	RBrace:   "}",
	LBracket: "[",
	RBracket: "]",
	Lt:       "<",
	Gt:       ">",
	Comma:    ",",
	Semi:     ";",
	Colon:    ":",
	PathSep:  "::",
	Assign:   "=",
	Star:     "*",
	Arrow:    "->",
	Minus:    "-",
	Bang:     "!",
	Hash:     "#",
	Amp:      "&",
	Dot:      ".",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Token is a lexeme with its byte offset in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Pos)
}

// Is reports whether t is the identifier or keyword word.
func (t Token) Is(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// keywords that keep a separating space before a following `::` path.
var spacedKeywords = map[string]bool{
	"const":  true,
	"mut":    true,
	"dyn":    true,
	"impl":   true,
	"as":     true,
	"unsafe": true,
	"extern": true,
}
