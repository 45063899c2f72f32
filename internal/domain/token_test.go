package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenPrecedence(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want int
	}{
		{TokenPlus, 1},
		{TokenMinus, 1},
		{TokenMultiply, 2},
		{TokenPower, 2},
		{TokenLeftParen, 0},
		{TokenRightSetBrace, 0},
		{TokenNumber, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Op(tt.kind).Precedence())
		})
	}
}

func TestTokenEqual(t *testing.T) {
	assert.True(t, Number(3).Equal(Number(3)))
	assert.False(t, Number(3).Equal(Number(4)))
	assert.True(t, Op(TokenPlus).Equal(Op(TokenPlus)))
	assert.False(t, Op(TokenPlus).Equal(Op(TokenMinus)))
	assert.True(t, SetToken(NewIntSet(1, 2)).Equal(SetToken(NewIntSet(2, 1))))
	assert.False(t, SetToken(NewIntSet(1)).Equal(SetToken(NewIntSet(1, 2))))
	assert.False(t, Number(1).Equal(SetToken(NewIntSet(1))))
}

func TestTokenIsOperator(t *testing.T) {
	for _, k := range []TokenKind{TokenPlus, TokenMinus, TokenMultiply, TokenPower} {
		assert.True(t, Op(k).IsOperator(), k.String())
	}
	for _, k := range []TokenKind{TokenNumber, TokenSet, TokenLeftParen, TokenRightParen, TokenLeftSetBrace, TokenRightSetBrace} {
		assert.False(t, Op(k).IsOperator(), k.String())
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "7", Number(7).String())
	assert.Equal(t, "{1, 3}", SetToken(NewIntSet(3, 1)).String())
	assert.Equal(t, "^", Op(TokenPower).String())
	assert.Equal(t, "token(99)", TokenKind(99).String())
}
