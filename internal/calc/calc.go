// Package calc evaluates integer expressions over bignum.BigInt.
//
// Supported syntax: + - * / % with the usual precedence, unary minus and
// plus, parentheses, the functions abs, sign and checksum, variables, and
// `let name = expr` bindings. Numerals are decimal by default; 0x, 0o and 0b
// prefixes and the explicit form radix#digits (e.g. 36#zz) select a base.
// Underscores inside numerals are ignored.
package calc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/unicode/norm"

	"bigword/internal/bignum"
	"bigword/internal/intern"
	"bigword/internal/trace"
)

var (
	// ErrSyntax wraps parser failures.
	ErrSyntax = errors.New("syntax error")
	// ErrUndefined reports a name read before any let bound it.
	ErrUndefined = errors.New("undefined variable")
	// ErrFunction reports an unknown function or bad arguments to one.
	ErrFunction = errors.New("bad function call")
	// ErrRadix reports a radix#digits prefix outside 2..36.
	ErrRadix = errors.New("invalid radix")
)

// LastName is the variable that always holds the previous result.
const LastName = "_"

// Error attaches a source position to an evaluation failure.
type Error struct {
	Pos lexer.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of one statement.
type Result struct {
	Name  string // bound name, empty for a bare expression
	Value bignum.BigInt
}

// Binding is a named value in a Session.
type Binding struct {
	Name  string
	Value bignum.BigInt
}

// Options configure a Session.
type Options struct {
	// Base is the radix for numerals without a prefix. Zero means 10.
	Base bignum.Word
}

// Session evaluates statements and keeps variables between them.
// It is not safe for concurrent use.
type Session struct {
	names *intern.Table[string]
	vars  map[intern.ID]bignum.BigInt
	base  bignum.Word
}

// NewSession returns an empty Session.
func NewSession(opts Options) (*Session, error) {
	base := opts.Base
	if base == 0 {
		base = 10
	}
	if base < bignum.MinBase || base > bignum.MaxBase {
		return nil, fmt.Errorf("%w: %d", ErrRadix, base)
	}
	return &Session{
		names: intern.New[string](),
		vars:  make(map[intern.ID]bignum.BigInt),
		base:  base,
	}, nil
}

// Set binds name to v.
func (s *Session) Set(name string, v bignum.BigInt) {
	s.vars[s.names.Intern(name)] = v
}

// Get returns the value bound to name.
func (s *Session) Get(name string) (bignum.BigInt, bool) {
	id, ok := s.names.Find(name)
	if !ok {
		return bignum.BigInt{}, false
	}
	v, ok := s.vars[id]
	return v, ok
}

// Bindings returns every variable, sorted by name.
func (s *Session) Bindings() []Binding {
	out := make([]Binding, 0, len(s.vars))
	for id, v := range s.vars {
		out = append(out, Binding{Name: s.names.MustLookup(id), Value: v})
	}
	slices.SortFunc(out, func(a, b Binding) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Eval parses and evaluates one statement. Input is NFKC-folded first, so
// full-width digits and operators are accepted.
func (s *Session) Eval(ctx context.Context, src string) (Result, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeItem, "calc.eval", trace.ParentID(ctx))
	src = norm.NFKC.String(src)
	res, err := s.eval(src)
	if err != nil {
		span.WithExtra("error", err.Error()).End(src)
		return Result{}, err
	}
	span.WithExtra("words", strconv.Itoa(res.Value.Len())).End(src)
	return res, nil
}

func (s *Session) eval(src string) (Result, error) {
	stmt, err := calcParser.ParseString("", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return Result{}, &Error{Pos: perr.Position(), Err: fmt.Errorf("%w: %s", ErrSyntax, perr.Message())}
		}
		return Result{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	v, err := s.expr(stmt.Expr)
	if err != nil {
		return Result{}, err
	}
	s.Set(LastName, v)
	if stmt.Let != nil {
		s.Set(*stmt.Let, v)
		return Result{Name: *stmt.Let, Value: v}, nil
	}
	return Result{Value: v}, nil
}

func (s *Session) expr(e *Expr) (bignum.BigInt, error) {
	acc, err := s.term(e.Left)
	if err != nil {
		return bignum.BigInt{}, err
	}
	for _, op := range e.Rest {
		rhs, err := s.term(op.Right)
		if err != nil {
			return bignum.BigInt{}, err
		}
		if op.Op == "+" {
			acc.AddAssign(rhs)
		} else {
			acc.SubAssign(rhs)
		}
	}
	return acc, nil
}

func (s *Session) term(t *Term) (bignum.BigInt, error) {
	acc, err := s.unary(t.Left)
	if err != nil {
		return bignum.BigInt{}, err
	}
	for _, op := range t.Rest {
		rhs, err := s.unary(op.Right)
		if err != nil {
			return bignum.BigInt{}, err
		}
		switch op.Op {
		case "*":
			acc.MulAssign(rhs)
		case "/":
			err = acc.QuoAssign(rhs)
		case "%":
			err = acc.RemAssign(rhs)
		}
		if err != nil {
			return bignum.BigInt{}, &Error{Pos: op.Pos, Err: err}
		}
	}
	return acc, nil
}

func (s *Session) unary(u *Unary) (bignum.BigInt, error) {
	if u.Primary != nil {
		return s.primary(u.Primary)
	}
	v, err := s.unary(u.Operand)
	if err != nil {
		return bignum.BigInt{}, err
	}
	if u.Op == "-" {
		v.Negate()
	}
	return v, nil
}

func (s *Session) primary(p *Primary) (bignum.BigInt, error) {
	switch {
	case p.Call != nil:
		return s.call(p.Call)
	case p.Number != nil:
		v, err := s.literal(*p.Number)
		if err != nil {
			return bignum.BigInt{}, &Error{Pos: p.Pos, Err: err}
		}
		return v, nil
	case p.Ident != nil:
		v, ok := s.Get(*p.Ident)
		if !ok {
			return bignum.BigInt{}, &Error{Pos: p.Pos, Err: fmt.Errorf("%w: %s", ErrUndefined, *p.Ident)}
		}
		return v, nil
	default:
		return s.expr(p.Sub)
	}
}

// literal parses a numeral token, honoring radix prefixes.
func (s *Session) literal(text string) (bignum.BigInt, error) {
	text = strings.ReplaceAll(text, "_", "")
	if radix, digits, ok := strings.Cut(text, "#"); ok {
		b, err := strconv.Atoi(radix)
		if err != nil {
			return bignum.BigInt{}, fmt.Errorf("%w: %q", ErrRadix, radix)
		}
		base, err := safecast.Conv[bignum.Word](b)
		if err != nil || base < bignum.MinBase || base > bignum.MaxBase {
			return bignum.BigInt{}, fmt.Errorf("%w: %d", ErrRadix, b)
		}
		return bignum.Parse(digits, base)
	}
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return bignum.Parse(text[2:], 16)
		case 'o', 'O':
			return bignum.Parse(text[2:], 8)
		case 'b', 'B':
			return bignum.Parse(text[2:], 2)
		}
	}
	return bignum.Parse(text, s.base)
}

func (s *Session) call(c *Call) (bignum.BigInt, error) {
	args := make([]bignum.BigInt, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := s.expr(a)
		if err != nil {
			return bignum.BigInt{}, err
		}
		args = append(args, v)
	}
	fail := func(format string, a ...any) (bignum.BigInt, error) {
		return bignum.BigInt{}, &Error{Pos: c.Pos, Err: fmt.Errorf("%w: %s: "+format, append([]any{ErrFunction, c.Name}, a...)...)}
	}
	switch c.Name {
	case "abs", "sign":
		if len(args) != 1 {
			return fail("want 1 argument, got %d", len(args))
		}
		if c.Name == "abs" {
			return args[0].Abs(), nil
		}
		return bignum.FromInt64(int64(args[0].Sign())), nil
	case "checksum":
		if len(args) != 2 {
			return fail("want 2 arguments, got %d", len(args))
		}
		p, ok := args[1].Uint64()
		prime, err := safecast.Conv[uint32](p)
		if !ok || err != nil || prime == 0 {
			return fail("modulus %v out of range 1..4294967295", args[1])
		}
		return bignum.FromUint32(args[0].Checksum(prime)), nil
	default:
		return fail("unknown function")
	}
}
