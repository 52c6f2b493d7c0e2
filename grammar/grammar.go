package grammar

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	cerr "github.com/toycpp/toycpp/error"
	"github.com/toycpp/toycpp/lexer"
)

// tracer traces with key 'toycpp.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("toycpp.grammar")
}

// TerminalToken is a symbolic token category a grammar can match, as opposed
// to a verbatim lexeme.
type TerminalToken int

const (
	TermInvalid TerminalToken = iota
	TermIdentifier
	TermIntegerLiteral
	TermFloatLiteral
	TermDoubleLiteral
	TermCharLiteral
	TermStringLiteral
	TermEof
	TermBasicType
	TermIntModifier
	TermValueModifier
	TermKeyword
)

func (t TerminalToken) String() string {
	switch t {
	case TermIdentifier:
		return "<Identifier>"
	case TermIntegerLiteral:
		return "<IntLiteral>"
	case TermFloatLiteral:
		return "<FloatLiteral>"
	case TermDoubleLiteral:
		return "<DoubleLiteral>"
	case TermCharLiteral:
		return "<CharLiteral>"
	case TermStringLiteral:
		return "<StringLiteral>"
	case TermEof:
		return "<EOF>"
	case TermBasicType:
		return "<BasicType>"
	case TermIntModifier:
		return "<IntModifier>"
	case TermValueModifier:
		return "<ValueModifier>"
	case TermKeyword:
		return "<Keyword>"
	}
	return "<?invalid-token?>"
}

// TargetType discriminates the three kinds of right-hand-side elements.
type TargetType int

const (
	TargetTerminal TargetType = iota
	TargetLiteral
	TargetNonTerminal
)

// Target is one right-hand-side element of a rule alternative: a terminal
// token class, a verbatim lexeme, or a reference to another rule.
//
// Targets compare with ==. Str is empty for every terminal class except
// Identifier, where it may carry a literal payload; two Identifier-class
// targets are therefore equal only when their payloads match. The grammar
// loader never sets a payload, and MatchesToken ignores it: an
// Identifier-class target matches every identifier token.
type Target struct {
	Type  TargetType
	Str   string
	Token TerminalToken
}

func NewTerminalTarget(tok TerminalToken) Target {
	return Target{Type: TargetTerminal, Token: tok}
}

func NewLiteralTarget(lexeme string) Target {
	return Target{Type: TargetLiteral, Str: lexeme}
}

func NewNonTerminalTarget(name string) Target {
	return Target{Type: TargetNonTerminal, Str: name}
}

func (t Target) IsTerminal() bool {
	return t.Type != TargetNonTerminal
}

func (t Target) IsNonTerminal() bool {
	return t.Type == TargetNonTerminal
}

// MatchesToken reports whether a lexed token satisfies this target. Rules
// never match tokens directly.
func (t Target) MatchesToken(tok lexer.Token) bool {
	switch t.Type {
	case TargetNonTerminal:
		return false
	case TargetTerminal:
		switch t.Token {
		case TermIntegerLiteral, TermFloatLiteral, TermDoubleLiteral:
			return tok.Kind == lexer.NumberLiteral
		case TermIdentifier:
			return tok.Kind == lexer.Identifier
		case TermCharLiteral:
			return tok.Kind == lexer.CharLiteral
		case TermStringLiteral:
			return tok.Kind == lexer.StringLiteral
		case TermEof:
			return tok.Kind == lexer.Eof
		case TermBasicType:
			return tok.Kind == lexer.BasicType
		case TermIntModifier:
			return tok.Kind == lexer.IntModifier
		case TermValueModifier:
			return tok.Kind == lexer.ValueModifier
		case TermKeyword:
			return tok.Kind == lexer.Keyword
		}
		return false
	case TargetLiteral:
		return tok.Lexeme == t.Str
	}
	return false
}

func (t Target) String() string {
	switch t.Type {
	case TargetTerminal:
		return t.Token.String()
	case TargetLiteral:
		return "'" + t.Str + "'"
	case TargetNonTerminal:
		return t.Str
	}
	return "<?invalid-target?>"
}

// Alternative is one ordered right-hand side of a rule. An empty alternative
// derives nothing.
type Alternative []Target

// Rule is a named non-terminal with its ordered alternatives.
type Rule struct {
	Name         string
	Alternatives []Alternative
}

// allowsEmpty reports whether the rule has an empty alternative.
func (r *Rule) allowsEmpty() bool {
	for _, alt := range r.Alternatives {
		if len(alt) == 0 {
			return true
		}
	}
	return false
}

// Grammar maps non-terminal names to rules. Every non-terminal referenced by
// a target exists as a key; the loader enforces this. Rule insertion order is
// preserved so that enumeration is deterministic.
type Grammar struct {
	rules map[string]*Rule
	names []string
}

func NewGrammar() *Grammar {
	return &Grammar{
		rules: map[string]*Rule{},
	}
}

func (g *Grammar) add(rule *Rule) {
	if _, ok := g.rules[rule.Name]; !ok {
		g.names = append(g.names, rule.Name)
	}
	g.rules[rule.Name] = rule
}

// Rule looks a rule up by non-terminal name.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// Names lists the non-terminal names in definition order.
func (g *Grammar) Names() []string {
	return g.names
}

var (
	ErrGrammarSyntax  = errors.New("malformed grammar rule; expected an identifier, a string literal, ';' or '|'")
	ErrUnresolvedRule = errors.New("grammar references undefined rules")
)

// UnresolvedRuleError reports every non-terminal that was referenced but
// never defined.
type UnresolvedRuleError struct {
	Names []string
}

func (e *UnresolvedRuleError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUnresolvedRule, strings.Join(e.Names, ", "))
}

func (e *UnresolvedRuleError) Unwrap() error {
	return ErrUnresolvedRule
}

// reservedTargets maps the identifiers with a fixed meaning on a rule's
// right-hand side to their terminal classes.
var reservedTargets = map[string]TerminalToken{
	"Identifier":     TermIdentifier,
	"IntegerLiteral": TermIntegerLiteral,
	"FloatLiteral":   TermFloatLiteral,
	"DoubleLiteral":  TermDoubleLiteral,
	"CharLiteral":    TermCharLiteral,
	"StringLiteral":  TermStringLiteral,
	"Eof":            TermEof,
	"BasicType":      TermBasicType,
	"IntModifier":    TermIntModifier,
	"ValueModifier":  TermValueModifier,
	"Keyword":        TermKeyword,
}

// Load reads a grammar file from disk.
func Load(path string) (*Grammar, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read the grammar file %s: %w", path, err)
	}
	return Parse(path, string(src))
}

// Parse reads rules of the form
//
//	name -> target* ( '|' target* )* ';'
//
// A bare identifier on the right-hand side is a terminal class if it is one
// of the reserved names, the empty alternative marker 'Empty', or otherwise a
// reference to another rule. References to rules that are not defined yet are
// recorded as pending and must all be resolved by the end of the file.
func Parse(file, src string) (*Grammar, error) {
	lex := lexer.New(file, src)
	g := NewGrammar()

	pending := map[string]struct{}{}
	var pendingNames []string

	insideRule := false
	var curr *Rule

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.Eof {
			break
		}

		if !insideRule {
			name := tok.Lexeme
			tracer().Debugf("new rule: %s", name)

			curr = &Rule{
				Name:         name,
				Alternatives: []Alternative{{}},
			}
			g.add(curr)
			if _, ok := pending[name]; ok {
				delete(pending, name)
				pendingNames = remove(pendingNames, name)
			}

			if err := lex.Eat(lexer.Arrow); err != nil {
				return nil, err
			}
			insideRule = true
			continue
		}

		last := len(curr.Alternatives) - 1
		switch {
		case tok.Kind == lexer.StringLiteral || tok.Kind == lexer.CharLiteral:
			// Both quoting styles denote a verbatim lexeme.
			curr.Alternatives[last] = append(curr.Alternatives[last], NewLiteralTarget(tok.Lexeme))
		case tok.Kind == lexer.BitwiseOr:
			tracer().Debugf("new alternative for %s", curr.Name)
			curr.Alternatives = append(curr.Alternatives, Alternative{})
		case tok.Kind == lexer.Semicolon:
			tracer().Debugf("done parsing %s: %d alternatives", curr.Name, len(curr.Alternatives))
			insideRule = false
		case tok.Kind == lexer.Identifier:
			if tok.Lexeme == "Empty" {
				// Not a token; it marks an alternative that derives nothing.
				continue
			}
			if term, ok := reservedTargets[tok.Lexeme]; ok {
				curr.Alternatives[last] = append(curr.Alternatives[last], NewTerminalTarget(term))
				continue
			}
			name := tok.Lexeme
			if _, defined := g.rules[name]; !defined {
				if _, seen := pending[name]; !seen {
					pending[name] = struct{}{}
					pendingNames = append(pendingNames, name)
				}
			}
			curr.Alternatives[last] = append(curr.Alternatives[last], NewNonTerminalTarget(name))
		default:
			return nil, &cerr.CompileError{
				Cause:      fmt.Errorf("%w; got %v", ErrGrammarSyntax, tok),
				File:       tok.Loc.File,
				StartLine:  tok.Loc.StartLine,
				StartCol:   tok.Loc.StartCol,
				EndLine:    tok.Loc.EndLine,
				EndCol:     tok.Loc.EndCol,
				SourceLine: tok.Loc.Line,
				Code:       cerr.ExitGrammarSyntax,
			}
		}
	}

	if len(pendingNames) > 0 {
		return nil, &cerr.CompileError{
			Cause: &UnresolvedRuleError{Names: pendingNames},
			File:  file,
			Code:  cerr.ExitUnresolvedRules,
		}
	}

	return g, nil
}

func remove(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
