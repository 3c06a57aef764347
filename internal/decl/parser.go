// Package decl extracts the four declaration families (type aliases, named
// constants, structures and extern functions) from a bindgen-style
// declaration corpus.
package decl

import (
	"strings"
)

// Alias is a `type <Name> = <Type>;` declaration with a simple path on the right.
type Alias struct {
	Name string
	Type string
}

// Constant is a `const <Name>: <Type> = <Value>;` declaration.
type Constant struct {
	Name  string
	Type  string
	Value string
}

// Struct is a `struct <Name> { ... }` declaration. Only the name is kept.
type Struct struct {
	Name string
}

// Function is a single function declared in an extern block.
type Function struct {
	Name string
	// Params holds the normalized text of each top-level parameter.
	Params []string
	// Return is the normalized return type, empty when the function returns nothing.
	Return string
}

// FirstParam returns the first parameter text, or "" for a nullary function.
func (f Function) FirstParam() string {
	if len(f.Params) == 0 {
		return ""
	}
	return f.Params[0]
}

// RestParams returns the text of every parameter after the first, comma separated.
func (f Function) RestParams() string {
	if len(f.Params) < 2 {
		return ""
	}
	return strings.Join(f.Params[1:], ", ")
}

// Corpus holds the declarations in source order.
type Corpus struct {
	Aliases   []Alias
	Constants []Constant
	Structs   []Struct
	Functions []Function
}

// Parse extracts every recognizable declaration from src. Text that matches
// no production is skipped; Parse never fails.
func Parse(src []byte) *Corpus {
	p := &parser{toks: Tokenize(src), corpus: &Corpus{}}
	p.parseItems(false)
	return p.corpus
}

type parser struct {
	toks   []Token
	pos    int
	corpus *Corpus
}

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) peek(off int) Token {
	if p.pos+off < len(p.toks) {
		return p.toks[p.pos+off]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind Kind) bool {
	if p.cur().Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *parser) acceptWord(word string) bool {
	if p.cur().Is(word) {
		p.advance()
		return true
	}
	return false
}

// parseItems parses items until EOF, or until the closing brace of an extern
// block when inBlock is set.
func (p *parser) parseItems(inBlock bool) {
	for {
		switch p.cur().Kind {
		case EOF:
			return
		case RBrace:
			p.advance()
			if inBlock {
				return
			}
			continue
		}
		start := p.pos
		p.parseItem(inBlock)
		if p.pos == start {
			p.advance()
		}
	}
}

func (p *parser) parseItem(inBlock bool) {
	p.skipAttributes()
	if p.acceptWord("pub") && p.cur().Kind == LParen {
		p.skipBalanced() // pub(crate)
	}
	if p.cur().Is("unsafe") && p.peek(1).Is("extern") {
		p.advance()
	}
	tok := p.cur()
	switch {
	case tok.Kind != Ident:
		p.resync()
	case tok.Text == "type" && !inBlock:
		p.advance()
		p.parseAlias()
	case tok.Text == "const" && !inBlock:
		p.advance()
		p.parseConstant()
	case tok.Text == "struct" && !inBlock:
		p.advance()
		p.parseStruct()
	case tok.Text == "extern" && !inBlock:
		p.advance()
		p.parseExtern()
	case tok.Text == "fn" && inBlock:
		p.advance()
		p.parseFunction()
	default:
		p.resync()
	}
}

func (p *parser) parseAlias() {
	if p.cur().Kind != Ident {
		p.resync()
		return
	}
	name := p.advance().Text
	if !p.accept(Assign) {
		p.resync()
		return
	}
	rhs, ok := p.until(Semi)
	if !ok {
		return
	}
	if !isSimplePath(rhs) {
		return
	}
	p.corpus.Aliases = append(p.corpus.Aliases, Alias{Name: name, Type: Join(rhs)})
}

func (p *parser) parseConstant() {
	if p.cur().Kind != Ident {
		p.resync()
		return
	}
	name := p.advance().Text
	if !p.accept(Colon) {
		p.resync()
		return
	}
	typ, ok := p.until(Assign)
	if !ok || len(typ) == 0 {
		p.resync()
		return
	}
	value, ok := p.until(Semi)
	if !ok || len(value) == 0 {
		return
	}
	p.corpus.Constants = append(p.corpus.Constants, Constant{
		Name:  name,
		Type:  Join(typ),
		Value: Join(value),
	})
}

func (p *parser) parseStruct() {
	if p.cur().Kind != Ident || p.peek(1).Kind != LBrace {
		p.resync()
		return
	}
	name := p.advance().Text
	p.skipBalanced()
	p.corpus.Structs = append(p.corpus.Structs, Struct{Name: name})
}

func (p *parser) parseExtern() {
	p.accept(String) // ABI
	if p.cur().Kind != LBrace {
		p.resync()
		return
	}
	p.advance()
	p.parseItems(true)
}

func (p *parser) parseFunction() {
	if p.cur().Kind != Ident || p.peek(1).Kind != LParen {
		p.resync()
		return
	}
	name := p.advance().Text
	p.advance() // (
	var params []string
	var seg []Token
	depth := 0
loop:
	for {
		tok := p.advance()
		switch tok.Kind {
		case EOF:
			return
		case LParen, Lt, LBracket:
			depth++
		case RParen, Gt, RBracket:
			if depth == 0 && tok.Kind == RParen {
				break loop
			}
			depth--
		case Comma:
			if depth == 0 {
				if len(seg) > 0 {
					params = append(params, Join(seg))
				}
				seg = nil
				continue
			}
		}
		seg = append(seg, tok)
	}
	if len(seg) > 0 {
		params = append(params, Join(seg))
	}

	var ret string
	if p.accept(Arrow) {
		toks, ok := p.until(Semi)
		if !ok {
			return
		}
		ret = Join(toks)
	} else if !p.accept(Semi) {
		// a body or anything else is not a declaration
		p.resync()
		return
	}
	p.corpus.Functions = append(p.corpus.Functions, Function{
		Name:   name,
		Params: params,
		Return: ret,
	})
}

// until collects tokens up to the first top-level stop token and consumes the
// stop token. It reports false if a `;`, a closing brace or EOF comes first.
func (p *parser) until(stop Kind) ([]Token, bool) {
	var toks []Token
	depth := 0
	for {
		tok := p.cur()
		switch tok.Kind {
		case EOF:
			return nil, false
		case RBrace:
			if depth == 0 {
				return nil, false
			}
		}
		if tok.Kind == stop && depth == 0 {
			p.advance()
			return toks, true
		}
		if tok.Kind == Semi && depth == 0 {
			p.advance()
			return nil, false
		}
		switch tok.Kind {
		case LParen, LBracket, LBrace:
			depth++
		case RParen, RBracket, RBrace:
			depth--
		}
		toks = append(toks, p.advance())
	}
}

// skipAttributes skips any `#[...]` and `#![...]` attributes.
func (p *parser) skipAttributes() {
	for p.cur().Kind == Hash {
		off := 1
		if p.peek(off).Kind == Bang {
			off++
		}
		if p.peek(off).Kind != LBracket {
			return
		}
		p.pos += off
		p.skipBalanced()
	}
}

// skipBalanced consumes a bracketed group starting at the current token.
func (p *parser) skipBalanced() {
	depth := 0
	for {
		tok := p.advance()
		switch tok.Kind {
		case EOF:
			return
		case LParen, LBracket, LBrace:
			depth++
		case RParen, RBracket, RBrace:
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}

// resync skips to just after the next top-level `;` or balanced `{...}` block.
// A closing brace of an enclosing block is left in place.
func (p *parser) resync() {
	for {
		switch p.cur().Kind {
		case EOF, RBrace:
			return
		case Semi:
			p.advance()
			return
		case LBrace:
			p.skipBalanced()
			return
		case LParen, LBracket:
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

func isSimplePath(toks []Token) bool {
	if len(toks) == 0 {
		return false
	}
	for _, t := range toks {
		if t.Kind != Ident && t.Kind != PathSep {
			return false
		}
	}
	return toks[len(toks)-1].Kind == Ident
}

// Join rebuilds normalized text from tokens: pieces are separated by single
// spaces, except that pointer sigils, paths and brackets bind tightly.
// Trailing commas before a closing bracket are dropped.
func Join(toks []Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if t.Kind == Comma && i+1 < len(toks) && isCloser(toks[i+1].Kind) {
			continue // trailing comma
		}
		if i > 0 && spaceBetween(toks, i) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func spaceBetween(toks []Token, i int) bool {
	prev, t := toks[i-1], toks[i]
	switch prev.Kind {
	case Star, PathSep, LParen, Lt, LBracket, Amp, Hash, Dot:
		return false
	case Minus:
		if i == 1 || !isOperand(toks[i-2]) {
			return false
		}
	}
	switch t.Kind {
	case RParen, Gt, RBracket, Comma, Semi, Colon, Dot:
		return false
	case LParen, Lt, LBracket, PathSep:
		return prev.Kind != Ident || spacedKeywords[prev.Text]
	}
	return true
}

func isOperand(t Token) bool {
	switch t.Kind {
	case Ident, Int, String, RParen, RBracket:
		return true
	}
	return false
}

func isCloser(k Kind) bool {
	return k == RParen || k == Gt || k == RBracket
}
