package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Keywords(t *testing.T) {
	source := "pub fn struct enum variant trait impl import use as where var const"
	l := New(source, "test.mana")

	expectedTypes := []TokenType{
		TokenPub, TokenFn, TokenStruct, TokenEnum, TokenVariant, TokenTrait,
		TokenImpl, TokenImport, TokenUse, TokenAs, TokenWhere, TokenVar, TokenConst,
		TokenEOF,
	}

	for i, expected := range expectedTypes {
		token, err := l.NextToken()
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, expected, token.Type, "token %d", i)
	}
}

func TestLexer_Identifiers(t *testing.T) {
	source := "foo bar _temp myVar123"
	l := New(source, "test.mana")

	expected := []string{"foo", "bar", "_temp", "myVar123"}

	for i, expectedName := range expected {
		token, err := l.NextToken()
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, TokenIdentifier, token.Type, "token %d", i)
		assert.Equal(t, expectedName, token.Lexeme, "token %d", i)
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"1e10", "1e10"},
		{"2.5e-3", "2.5e-3"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			l := New(tt.source, "test.mana")
			token, err := l.NextToken()
			require.NoError(t, err)
			assert.Equal(t, TokenNumber, token.Type)
			assert.Equal(t, tt.want, token.Lexeme)
		})
	}
}

// TestLexer_NumberVsRange guards the lexer's disambiguation between a
// trailing decimal point and the range operator: "1..5" must not be read
// as the float "1." followed by ".5".
func TestLexer_NumberVsRange(t *testing.T) {
	l := New("1..5", "test.mana")

	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, TokenNumber, tok.Type)
	assert.Equal(t, "1", tok.Lexeme)

	tok, err = l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, TokenDotDot, tok.Type)

	tok, err = l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, TokenNumber, tok.Type)
	assert.Equal(t, "5", tok.Lexeme)
}

func TestLexer_Strings(t *testing.T) {
	source := `"hello" "world\n" "with\"quotes"`
	l := New(source, "test.mana")

	expectedLexemes := []string{
		`"hello"`,
		`"world\n"`,
		`"with\"quotes"`,
	}

	for i, expected := range expectedLexemes {
		token, err := l.NextToken()
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, TokenString, token.Type, "token %d", i)
		assert.Equal(t, expected, token.Lexeme, "token %d", i)
	}
}

func TestLexer_FString(t *testing.T) {
	l := New(`f"hello {name}!"`, "test.mana")

	token, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, TokenFString, token.Type)
	assert.Equal(t, `f"hello {name}!"`, token.Lexeme)
}

func TestLexer_CharLiteral(t *testing.T) {
	tests := []struct {
		source string
	}{
		{`'a'`},
		{`'\n'`},
		{`'\''`},
	}
	for _, tt := range tests {
		l := New(tt.source, "test.mana")
		token, err := l.NextToken()
		require.NoError(t, err, tt.source)
		assert.Equal(t, TokenChar, token.Type, tt.source)
	}
}

func TestLexer_Operators(t *testing.T) {
	source := "+ - * / % ** == != < <= > >= && || ! = += -> => ? ?. ?? : :: .. ..="
	l := New(source, "test.mana")

	expectedTypes := []TokenType{
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenStarStar,
		TokenEqual, TokenNotEqual,
		TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual,
		TokenAnd, TokenOr, TokenNot,
		TokenAssign, TokenPlusEq,
		TokenArrow, TokenFatArrow,
		TokenQuestion, TokenQuestionDot, TokenQuestionQuestion,
		TokenColon, TokenColonColon,
		TokenDotDot, TokenDotDotEq,
		TokenEOF,
	}

	for i, expected := range expectedTypes {
		token, err := l.NextToken()
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, expected, token.Type, "token %d", i)
	}
}

func TestLexer_Comments(t *testing.T) {
	source := `
// line comment
/* block comment */
/* nested /* comment */ here */
foo
`
	l := New(source, "test.mana")

	var token Token
	var err error
	for {
		token, err = l.NextToken()
		require.NoError(t, err)
		if token.Type != TokenComment {
			break
		}
	}

	assert.Equal(t, TokenIdentifier, token.Type)
	assert.Equal(t, "foo", token.Lexeme)
}

func TestLexer_PositionTracking(t *testing.T) {
	source := "foo\nbar"
	l := New(source, "test.mana")

	token1, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, 1, token1.Position.Line)
	assert.Equal(t, 1, token1.Position.Column)

	token2, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, 2, token2.Position.Line)
	assert.Equal(t, 1, token2.Position.Column)
}

func TestLexer_ModulePath(t *testing.T) {
	l := New("std::io::file", "test.mana")

	expected := []struct {
		typ    TokenType
		lexeme string
	}{
		{TokenIdentifier, "std"},
		{TokenColonColon, "::"},
		{TokenIdentifier, "io"},
		{TokenColonColon, "::"},
		{TokenIdentifier, "file"},
		{TokenEOF, ""},
	}

	for i, want := range expected {
		tok, err := l.NextToken()
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, want.typ, tok.Type, "token %d", i)
	}
}
