package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hassan/mana/internal/lexer"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenType
		expected Precedence
	}{
		{"assign", lexer.TokenAssign, PrecAssignment},
		{"plus equals", lexer.TokenPlusEq, PrecAssignment},
		{"minus equals", lexer.TokenMinusEq, PrecAssignment},
		{"range", lexer.TokenDotDot, PrecRange},
		{"inclusive range", lexer.TokenDotDotEq, PrecRange},
		{"null coalesce", lexer.TokenQuestionQuestion, PrecNullCoalesce},
		{"logical or", lexer.TokenOr, PrecOr},
		{"logical and", lexer.TokenAnd, PrecAnd},
		{"equal", lexer.TokenEqual, PrecEquality},
		{"not equal", lexer.TokenNotEqual, PrecEquality},
		{"less than", lexer.TokenLess, PrecComparison},
		{"less equal", lexer.TokenLessEqual, PrecComparison},
		{"greater than", lexer.TokenGreater, PrecComparison},
		{"greater equal", lexer.TokenGreaterEqual, PrecComparison},
		{"bit or", lexer.TokenBitOr, PrecBitOr},
		{"bit xor", lexer.TokenBitXor, PrecBitXor},
		{"bit and", lexer.TokenBitAnd, PrecBitAnd},
		{"shift left", lexer.TokenShl, PrecShift},
		{"shift right", lexer.TokenShr, PrecShift},
		{"plus", lexer.TokenPlus, PrecTerm},
		{"minus", lexer.TokenMinus, PrecTerm},
		{"star", lexer.TokenStar, PrecFactor},
		{"slash", lexer.TokenSlash, PrecFactor},
		{"percent", lexer.TokenPercent, PrecFactor},
		{"star star", lexer.TokenStarStar, PrecExponent},
		{"as", lexer.TokenAs, PrecCast},
		{"dot", lexer.TokenDot, PrecCall},
		{"question dot", lexer.TokenQuestionDot, PrecCall},
		{"colon colon", lexer.TokenColonColon, PrecCall},
		{"left bracket", lexer.TokenLeftBracket, PrecCall},
		{"left paren", lexer.TokenLeftParen, PrecCall},
		{"identifier", lexer.TokenIdentifier, PrecNone},
		{"number", lexer.TokenNumber, PrecNone},
		{"semicolon", lexer.TokenSemicolon, PrecNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getPrecedence(tt.token))
		})
	}
}

func TestIsRightAssociative(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenType
		expected bool
	}{
		{"assign", lexer.TokenAssign, true},
		{"plus equals", lexer.TokenPlusEq, true},
		{"minus equals", lexer.TokenMinusEq, true},
		{"star star (exponent)", lexer.TokenStarStar, true},
		{"plus", lexer.TokenPlus, false},
		{"minus", lexer.TokenMinus, false},
		{"star", lexer.TokenStar, false},
		{"slash", lexer.TokenSlash, false},
		{"equal", lexer.TokenEqual, false},
		{"and", lexer.TokenAnd, false},
		{"or", lexer.TokenOr, false},
		{"dot", lexer.TokenDot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRightAssociative(tt.token))
		})
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	ladder := []Precedence{
		PrecAssignment, PrecRange, PrecNullCoalesce, PrecOr, PrecAnd,
		PrecEquality, PrecComparison, PrecBitOr, PrecBitXor, PrecBitAnd,
		PrecShift, PrecTerm, PrecFactor, PrecExponent, PrecCast, PrecUnary,
		PrecCall, PrecPrimary,
	}
	for i := 1; i < len(ladder); i++ {
		assert.Less(t, ladder[i-1], ladder[i])
	}
}
