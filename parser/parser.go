package parser

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	cerr "github.com/toycpp/toycpp/error"
	"github.com/toycpp/toycpp/grammar"
	"github.com/toycpp/toycpp/lexer"
)

// tracer traces with key 'toycpp.parser'.
func tracer() tracing.Trace {
	return tracing.Select("toycpp.parser")
}

// Node is one node of the concrete parse tree: a terminal leaf holding a
// lexeme, or a non-terminal with the children of the reduced alternative.
type Node struct {
	Name     string
	Terminal bool
	Children []*Node
}

// Match priorities; a pending reduction wins over a literal shift, which
// wins over a token-class shift. Ties keep the first-seen candidate.
const (
	prioReduction = 30
	prioLiteral   = 20
	prioTerminal  = 10
)

// Parser drives a parse table against a token stream with one token of
// lookahead. Feed it tokens with Advance until Done reports acceptance.
type Parser struct {
	table *grammar.Table

	states  []int
	nodes   []*Node
	pending *Node
	done    bool
}

func New(table *grammar.Table) *Parser {
	return &Parser{
		table:  table,
		states: []int{0},
	}
}

// Done reports whether a reduction of the augmented start rule accepted the
// input.
func (p *Parser) Done() bool {
	return p.done
}

// Tree returns the accepted parse tree, the top of the node stack.
func (p *Parser) Tree() *Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[len(p.nodes)-1]
}

// Advance runs shift and reduce steps against one lookahead token. It
// returns once the token has been consumed, once more input is needed to
// decide between shifting and reducing, or once the input is accepted.
func (p *Parser) Advance(look lexer.Token) error {
	consumed := false

	for {
		tracer().Debugf("state %d, %d nodes, lookahead %v", p.currState(), len(p.nodes), look)

		target, next, prio := p.matchShift(look, consumed)
		if prio > 0 {
			if prio == prioReduction {
				p.nodes = append(p.nodes, p.pending)
				p.pending = nil
			} else {
				p.nodes = append(p.nodes, &Node{Name: look.Lexeme, Terminal: true})
				consumed = true
			}
			tracer().Debugf("SHIFT %v, goto state %d", target, next)
			p.states = append(p.states, next)
			continue
		}

		reds := p.currRules().Reductions
		switch {
		case len(reds) > 1:
			return p.reduceReduceError(look, reds)

		case len(reds) == 1 && consumed && p.hasTerminalShift():
			// A shift/reduce standoff: prefer the shift by waiting for the
			// next lookahead.
			tracer().Debugf("shift/reduce standoff, waiting for more input")
			return nil

		case len(reds) == 1:
			r := reds[0]
			if r.RuleName == grammar.StartRuleName {
				tracer().Debugf("ACCEPT")
				p.done = true
				return nil
			}
			tracer().Debugf("REDUCE %d -> %s", r.PopCount, r.RuleName)
			p.reduce(r)
			continue

		case consumed && p.pending == nil:
			return nil

		default:
			return p.unexpectedTokenError(look)
		}
	}
}

// matchShift finds the highest-priority shift candidate of the current
// state, in first-seen order.
func (p *Parser) matchShift(look lexer.Token, consumed bool) (grammar.Target, int, int) {
	var bestTarget grammar.Target
	bestNext := -1
	bestPrio := 0

	it := p.currRules().Shifts.Iterator()
	for it.Next() {
		target := it.Key().(grammar.Target)
		next := it.Value().(int)

		prio := 0
		switch {
		case target.IsNonTerminal():
			if p.pending != nil && !p.pending.Terminal && p.pending.Name == target.Str {
				prio = prioReduction
			}
		case target.Type == grammar.TargetLiteral:
			if !consumed && target.MatchesToken(look) {
				prio = prioLiteral
			}
		default:
			if !consumed && target.MatchesToken(look) {
				prio = prioTerminal
			}
		}

		if prio > bestPrio {
			bestTarget, bestNext, bestPrio = target, next, prio
		}
	}

	return bestTarget, bestNext, bestPrio
}

// reduce pops the reduced alternative off both stacks and builds the new
// parse node, which waits as the pending reduction for its goto shift.
//
// Child construction flattens two cases: a leftmost child named like the
// reduction itself (a left-recursive chain) contributes its children in its
// place, and any child whose rule name starts with '_' is spliced into the
// parent, which lets helper rules stay invisible in the tree.
func (p *Parser) reduce(r grammar.Reduction) {
	n := len(p.nodes) - r.PopCount
	popped := p.nodes[n:]

	node := &Node{Name: r.RuleName}
	for i, child := range popped {
		switch {
		case i == 0 && !child.Terminal && child.Name == r.RuleName:
			node.Children = append(node.Children, child.Children...)
		case !child.Terminal && strings.HasPrefix(child.Name, "_"):
			node.Children = append(node.Children, child.Children...)
		default:
			node.Children = append(node.Children, child)
		}
	}

	p.nodes = p.nodes[:n]
	p.states = p.states[:len(p.states)-r.PopCount]
	p.pending = node
}

func (p *Parser) currState() int {
	return p.states[len(p.states)-1]
}

func (p *Parser) currRules() *grammar.ParseRules {
	return p.table.States[p.currState()]
}

func (p *Parser) hasTerminalShift() bool {
	it := p.currRules().Shifts.Iterator()
	for it.Next() {
		if it.Key().(grammar.Target).IsTerminal() {
			return true
		}
	}
	return false
}

// expectedTargets lists what the current state would accept, for
// diagnostics.
func (p *Parser) expectedTargets() []string {
	var expected []string
	it := p.currRules().Shifts.Iterator()
	for it.Next() {
		expected = append(expected, it.Key().(grammar.Target).String())
	}
	return expected
}

func (p *Parser) unexpectedTokenError(look lexer.Token) error {
	return &cerr.CompileError{
		Cause: fmt.Errorf("unable to shift or reduce on %v; state %d accepts: %s",
			look, p.currState(), strings.Join(p.expectedTargets(), ", ")),
		File:       look.Loc.File,
		StartLine:  look.Loc.StartLine,
		StartCol:   look.Loc.StartCol,
		EndLine:    look.Loc.EndLine,
		EndCol:     look.Loc.EndCol,
		SourceLine: look.Loc.Line,
		Code:       cerr.ExitParse,
	}
}

func (p *Parser) reduceReduceError(look lexer.Token, reds []grammar.Reduction) error {
	var names []string
	for _, r := range reds {
		names = append(names, r.RuleName)
	}
	return &cerr.CompileError{
		Cause: fmt.Errorf("reduce/reduce conflict in state %d between: %s",
			p.currState(), strings.Join(names, ", ")),
		File:       look.Loc.File,
		StartLine:  look.Loc.StartLine,
		StartCol:   look.Loc.StartCol,
		EndLine:    look.Loc.EndLine,
		EndCol:     look.Loc.EndCol,
		SourceLine: look.Loc.Line,
		Code:       cerr.ExitReduceReduce,
	}
}

// Parse feeds the lexer's tokens through a parser until the input is
// accepted or an error aborts the parse.
func Parse(table *grammar.Table, lex *lexer.Lexer) (*Node, error) {
	p := New(table)
	for !p.Done() {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if err := p.Advance(tok); err != nil {
			return nil, err
		}
	}
	return p.Tree(), nil
}
