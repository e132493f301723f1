package validator

import "github.com/Trendyol/maestro-assistant/pkgs/schema"

// TokenKind classifies a scalar used in command position. The same
// classification drives semantic highlighting in host editors.
type TokenKind int

const (
	// TokenCommand is a scalar matching a registered command key.
	TokenCommand TokenKind = iota
	// TokenDash is a sequence item marker.
	TokenDash
	// TokenTripleDash is the YAML document separator.
	TokenTripleDash
	// TokenInvalid is anything else in command position.
	TokenInvalid
)

func (k TokenKind) String() string {
	switch k {
	case TokenCommand:
		return "command"
	case TokenDash:
		return "dash"
	case TokenTripleDash:
		return "triple-dash"
	default:
		return "invalid"
	}
}

// Classify maps scalar text to its token kind against the given schema.
func Classify(text string, s *schema.Schema) TokenKind {
	switch text {
	case "-":
		return TokenDash
	case "---":
		return TokenTripleDash
	}
	if _, ok := s.Lookup(text); ok {
		return TokenCommand
	}
	return TokenInvalid
}
