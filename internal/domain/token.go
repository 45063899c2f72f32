package domain

import "strconv"

// TokenKind tags the variant held by a Token.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenSet
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenPower
	TokenLeftParen
	TokenRightParen
	TokenLeftSetBrace
	TokenRightSetBrace
)

var tokenKindNames = [...]string{
	TokenNumber:        "number",
	TokenSet:           "set",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenMultiply:      "*",
	TokenPower:         "^",
	TokenLeftParen:     "(",
	TokenRightParen:    ")",
	TokenLeftSetBrace:  "{",
	TokenRightSetBrace: "}",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "token(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Token is a tagged union of a number literal, a materialized set, or an
// operator/bracket marker. Num is meaningful only for TokenNumber and Set
// only for TokenSet.
type Token struct {
	Kind TokenKind
	Num  int64
	Set  IntSet
}

// Number builds a number literal token.
func Number(n int64) Token { return Token{Kind: TokenNumber, Num: n} }

// SetToken builds a set token that owns s.
func SetToken(s IntSet) Token { return Token{Kind: TokenSet, Set: s} }

// Op builds an operator or bracket token.
func Op(k TokenKind) Token { return Token{Kind: k} }

// IsOperator reports whether t is one of the binary operators.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case TokenPlus, TokenMinus, TokenMultiply, TokenPower:
		return true
	}
	return false
}

// Precedence ranks binary operators: + and - bind at 1, * and ^ at 2.
// Everything else has precedence 0.
func (t Token) Precedence() int {
	switch t.Kind {
	case TokenPlus, TokenMinus:
		return 1
	case TokenMultiply, TokenPower:
		return 2
	default:
		return 0
	}
}

// Equal compares tokens structurally.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TokenNumber:
		return t.Num == o.Num
	case TokenSet:
		return t.Set.Equal(o.Set)
	default:
		return true
	}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatInt(t.Num, 10)
	case TokenSet:
		return t.Set.String()
	default:
		return t.Kind.String()
	}
}
