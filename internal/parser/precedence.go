package parser

import "github.com/hassan/mana/internal/lexer"

// Precedence levels, lowest to highest. Matching the grammar's documented
// operator table: assignment binds loosest, member/call/scope access
// tightest.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =, +=, -=, ...
	PrecRange                 // .., ..=
	PrecNullCoalesce          // ??
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // ==, !=
	PrecComparison            // <, <=, >, >=
	PrecBitOr                 // |
	PrecBitXor                // ^
	PrecBitAnd                // &
	PrecShift                 // <<, >>
	PrecTerm                  // +, -
	PrecFactor                // *, /, %
	PrecExponent              // **
	PrecCast                  // as
	PrecUnary                 // !, -, ~, ++, --, await
	PrecCall                  // ., ?., ::, [], (), postfix ++/--, postfix ?
	PrecPrimary
)

func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenAssign,
		lexer.TokenPlusEq, lexer.TokenMinusEq, lexer.TokenStarEq, lexer.TokenSlashEq,
		lexer.TokenPercentEq, lexer.TokenAndEq, lexer.TokenOrEq, lexer.TokenXorEq,
		lexer.TokenShlEq, lexer.TokenShrEq:
		return PrecAssignment

	case lexer.TokenDotDot, lexer.TokenDotDotEq:
		return PrecRange

	case lexer.TokenQuestionQuestion:
		return PrecNullCoalesce

	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd

	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality

	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		return PrecComparison

	case lexer.TokenBitOr:
		return PrecBitOr
	case lexer.TokenBitXor:
		return PrecBitXor
	case lexer.TokenBitAnd:
		return PrecBitAnd
	case lexer.TokenShl, lexer.TokenShr:
		return PrecShift

	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor
	case lexer.TokenStarStar:
		return PrecExponent

	case lexer.TokenAs:
		return PrecCast

	case lexer.TokenDot, lexer.TokenQuestionDot, lexer.TokenColonColon,
		lexer.TokenLeftBracket, lexer.TokenLeftParen,
		lexer.TokenPlusPlus, lexer.TokenMinusMinus, lexer.TokenQuestion:
		return PrecCall

	default:
		return PrecNone
	}
}

func isRightAssociative(tokenType lexer.TokenType) bool {
	switch tokenType {
	case lexer.TokenAssign,
		lexer.TokenPlusEq, lexer.TokenMinusEq, lexer.TokenStarEq, lexer.TokenSlashEq,
		lexer.TokenPercentEq, lexer.TokenAndEq, lexer.TokenOrEq, lexer.TokenXorEq,
		lexer.TokenShlEq, lexer.TokenShrEq,
		lexer.TokenStarStar:
		return true
	default:
		return false
	}
}
