package decl

// Lexer splits declaration text into tokens. Whitespace and comments are
// trivia; bytes that start no token are skipped.
type Lexer struct {
	src []byte
	pos int
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Tokenize returns every token of src, terminated by a single EOF token.
func Tokenize(src []byte) []Token {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

// Next returns the next token, or EOF once the input is exhausted.
func (lx *Lexer) Next() Token {
	for {
		lx.skipTrivia()
		if lx.pos >= len(lx.src) {
			return Token{Kind: EOF, Pos: lx.pos}
		}
		start := lx.pos
		c := lx.src[lx.pos]
		switch {
		case isIdentStart(c):
			for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
				lx.pos++
			}
			return lx.token(Ident, start)
		case isDigit(c):
			// Suffixes and radix prefixes stay part of the literal.
			for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
				lx.pos++
			}
			return lx.token(Int, start)
		case c == '"':
			lx.scanString()
			return lx.token(String, start)
		}
		if kind, n := lx.punct(); kind != Invalid {
			lx.pos += n
			return lx.token(kind, start)
		}
		// unsupported byte
		lx.pos++
	}
}

func (lx *Lexer) token(kind Kind, start int) Token {
	return Token{Kind: kind, Text: string(lx.src[start:lx.pos]), Pos: start}
}

func (lx *Lexer) punct() (Kind, int) {
	c := lx.src[lx.pos]
	next := byte(0)
	if lx.pos+1 < len(lx.src) {
		next = lx.src[lx.pos+1]
	}
	switch c {
	case ':':
		if next == ':' {
			return PathSep, 2
		}
		return Colon, 1
	case '-':
		if next == '>' {
			return Arrow, 2
		}
		return Minus, 1
	case '(':
		return LParen, 1
	case ')':
		return RParen, 1
	case '{':
		return LBrace, 1
	case '}':
		return RBrace, 1
	case '[':
		return LBracket, 1
	case ']':
		return RBracket, 1
	case '<':
		return Lt, 1
	case '>':
		return Gt, 1
	case ',':
		return Comma, 1
	case ';':
		return Semi, 1
	case '=':
		return Assign, 1
	case '*':
		return Star, 1
	case '!':
		return Bang, 1
	case '#':
		return Hash, 1
	case '&':
		return Amp, 1
	case '.':
		return Dot, 1
	}
	return Invalid, 0
}

func (lx *Lexer) scanString() {
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
			continue
		case '"':
			lx.pos++
			return
		}
		lx.pos++
	}
	lx.pos = len(lx.src)
}

func (lx *Lexer) skipTrivia() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			lx.pos++
		case c == '/' && lx.peek(1) == '/':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == '/' && lx.peek(1) == '*':
			lx.skipBlockComment()
		default:
			return
		}
	}
}

// skipBlockComment consumes a possibly nested /* */ comment. An unterminated
// comment runs to the end of input.
func (lx *Lexer) skipBlockComment() {
	depth := 0
	for lx.pos < len(lx.src) {
		switch {
		case lx.src[lx.pos] == '/' && lx.peek(1) == '*':
			depth++
			lx.pos += 2
		case lx.src[lx.pos] == '*' && lx.peek(1) == '/':
			depth--
			lx.pos += 2
			if depth == 0 {
				return
			}
		default:
			lx.pos++
		}
	}
}

func (lx *Lexer) peek(off int) byte {
	if lx.pos+off < len(lx.src) {
		return lx.src[lx.pos+off]
	}
	return 0
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
