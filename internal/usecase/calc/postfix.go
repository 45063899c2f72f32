package calc

import "github.com/aalvaropc/polycheck/internal/domain"

// ToPostfix reorders infix tokens into postfix order with the
// shunting-yard algorithm. Operators of equal precedence associate to the
// left, ^ included.
//
// In the Sets domain number literals are not emitted; they collect into a
// pending set that becomes a single set token when its closing } is
// reached.
func ToPostfix(tokens []domain.Token, d domain.Domain) ([]domain.Token, error) {
	out := make([]domain.Token, 0, len(tokens))
	var ops []domain.Token

	var pending domain.IntSet
	openSets := 0

	for pos, tok := range tokens {
		switch tok.Kind {
		case domain.TokenNumber:
			if d != domain.Sets {
				out = append(out, tok)
				continue
			}
			if openSets == 0 {
				return nil, domain.Structural(pos, domain.ErrStrayNumber)
			}
			if pending == nil {
				pending = domain.IntSet{}
			}
			pending.Add(tok.Num)

		case domain.TokenSet:
			out = append(out, domain.SetToken(tok.Set.Clone()))

		case domain.TokenPlus, domain.TokenMinus, domain.TokenMultiply, domain.TokenPower:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if !top.IsOperator() || top.Precedence() < tok.Precedence() {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)

		case domain.TokenLeftParen:
			ops = append(ops, tok)

		case domain.TokenLeftSetBrace:
			ops = append(ops, tok)
			openSets++

		case domain.TokenRightParen:
			var ok bool
			out, ops, ok = popUntil(out, ops, domain.TokenLeftParen)
			if !ok {
				return nil, domain.Structural(pos, domain.ErrUnbalancedParen)
			}

		case domain.TokenRightSetBrace:
			var ok bool
			out, ops, ok = popUntil(out, ops, domain.TokenLeftSetBrace)
			if !ok {
				return nil, domain.Structural(pos, domain.ErrUnbalancedSetBrace)
			}
			openSets--
			if pending == nil {
				pending = domain.IntSet{}
			}
			out = append(out, domain.SetToken(pending))
			pending = nil

		default:
			return nil, domain.Structural(pos, domain.ErrUnsupportedOperator)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if !top.IsOperator() {
			return nil, domain.Structural(len(tokens), domain.ErrUnclosedBracket)
		}
		out = append(out, top)
	}
	return out, nil
}

// popUntil moves operators from ops to out until the open bracket is found
// and discarded. It fails when the stack runs out or a bracket of the other
// kind is met first.
func popUntil(out, ops []domain.Token, open domain.TokenKind) ([]domain.Token, []domain.Token, bool) {
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Kind == open {
			return out, ops, true
		}
		if !top.IsOperator() {
			return out, ops, false
		}
		out = append(out, top)
	}
	return out, ops, false
}
