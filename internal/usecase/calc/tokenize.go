package calc

import "github.com/aalvaropc/polycheck/internal/domain"

// Tokenize turns a clause into tokens. Digits become number literals and
// + - * ^ ( ) { } become operator and bracket tokens. Every other
// character is dropped without error.
func Tokenize(text string) []domain.Token {
	tokens := make([]domain.Token, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			tokens = append(tokens, domain.Number(int64(c-'0')))
		case c == '+':
			tokens = append(tokens, domain.Op(domain.TokenPlus))
		case c == '-':
			tokens = append(tokens, domain.Op(domain.TokenMinus))
		case c == '*':
			tokens = append(tokens, domain.Op(domain.TokenMultiply))
		case c == '^':
			tokens = append(tokens, domain.Op(domain.TokenPower))
		case c == '(':
			tokens = append(tokens, domain.Op(domain.TokenLeftParen))
		case c == ')':
			tokens = append(tokens, domain.Op(domain.TokenRightParen))
		case c == '{':
			tokens = append(tokens, domain.Op(domain.TokenLeftSetBrace))
		case c == '}':
			tokens = append(tokens, domain.Op(domain.TokenRightSetBrace))
		}
	}
	return tokens
}
