// Package compiler implements MTI's single-pass compiler: a
// Pratt-style parser that never builds an intermediate tree, emitting
// bytecode directly into a value.Chunk as it recognizes each
// construct.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/zimlit/mti/scanner"
	"github.com/zimlit/mti/token"
	"github.com/zimlit/mti/value"
)

const maxLocals = 256

type local struct {
	name  string
	depth int
}

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// Compiler holds all state for compiling one function body: its
// scanner, lookahead tokens, in-progress chunk, and the compile-time
// locals array that mirrors the single operand stack's layout at
// runtime.
type Compiler struct {
	scanner *scanner.Scanner
	alloc   *value.Allocator

	current  token.Token
	previous token.Token

	panicMode bool
	errs      []CompileError

	function *value.ObjFunction

	locals     [maxLocals]local
	localCount int
	scopeDepth int
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LeftParen:    {(*Compiler).grouping, nil, precNone},
		token.RightParen:   {nil, nil, precNone},
		token.End:          {nil, nil, precNone},
		token.Do:           {(*Compiler).block, nil, precStatement},
		token.Comma:        {nil, nil, precNone},
		token.Dot:          {nil, nil, precNone},
		token.Minus:        {(*Compiler).unary, (*Compiler).binary, precTerm},
		token.Plus:         {nil, (*Compiler).binary, precTerm},
		token.Semicolon:    {nil, nil, precNone},
		token.Slash:        {nil, (*Compiler).binary, precFactor},
		token.Star:         {nil, (*Compiler).binary, precFactor},
		token.Bang:         {(*Compiler).unary, nil, precNone},
		token.BangEqual:    {nil, (*Compiler).binary, precEquality},
		token.Equal:        {nil, nil, precNone},
		token.EqualEqual:   {nil, (*Compiler).binary, precEquality},
		token.Greater:      {nil, (*Compiler).binary, precComparison},
		token.GreaterEqual: {nil, (*Compiler).binary, precComparison},
		token.Less:         {nil, (*Compiler).binary, precComparison},
		token.LessEqual:    {nil, (*Compiler).binary, precComparison},
		token.Identifier:   {(*Compiler).variable, nil, precLiteral},
		token.String:       {(*Compiler).string, nil, precLiteral},
		token.Number:       {(*Compiler).number, nil, precNone},
		token.And:          {nil, (*Compiler).and_, precAnd},
		token.Class:        {nil, nil, precNone},
		token.Else:         {nil, nil, precNone},
		token.False:        {(*Compiler).literal, nil, precNone},
		token.Fn:           {nil, nil, precNone},
		token.If:           {(*Compiler).ifExpr, nil, precStatement},
		token.Nil:          {(*Compiler).literal, nil, precNone},
		token.Or:           {nil, (*Compiler).or_, precOr},
		token.Print:        {(*Compiler).print, nil, precStatement},
		token.Return:       {nil, nil, precNone},
		token.Super:        {nil, nil, precNone},
		token.Self:         {nil, nil, precNone},
		token.True:         {(*Compiler).literal, nil, precNone},
		token.Let:          {(*Compiler).vardecl, nil, precDeclaration},
		token.While:        {nil, nil, precNone},
		token.Error:        {nil, nil, precNone},
		token.EOF:          {nil, nil, precNone},
	}
}

func getRule(kind token.Kind) parseRule {
	if r, ok := rules[kind]; ok {
		return r
	}
	return parseRule{}
}

// Compile compiles source into a top-level function. A non-empty
// error slice means the function's bytecode is incomplete and must
// not be run.
func Compile(source string, alloc *value.Allocator) (*value.ObjFunction, []CompileError) {
	c := &Compiler{
		scanner: scanner.New(source),
		alloc:   alloc,
	}
	c.function = alloc.NewFunction()
	// slot 0 of every frame holds the function being run, so the
	// first declared local lands at slot 1
	c.locals[0] = local{name: "", depth: 0}
	c.localCount = 1

	c.advance()
	for !c.check(token.EOF) {
		c.statement()
	}
	c.emitOp(value.OpReturn)

	return c.function, c.errs
}

func (c *Compiler) chunk() *value.Chunk { return c.function.Chunk }

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Next()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.previous, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true

	where := ""
	switch tok.Kind {
	case token.EOF:
		where = " at end"
	case token.Error:
		// message already carries the diagnostic
	default:
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	c.errs = append(c.errs, CompileError{Line: tok.Line, Message: message + where})
}

func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.EOF {
		switch c.current.Kind {
		case token.Let, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

// emit helpers

func (c *Compiler) emitByte(b byte) { c.chunk().Write(b, c.previous.Line) }
func (c *Compiler) emitOp(op value.OpCode) { c.chunk().WriteOp(op, c.previous.Line) }
func (c *Compiler) emitOpByte(op value.OpCode, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

func (c *Compiler) emitJump(op value.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk().Code) - offset - 2
	if jump > 0xffff {
		c.error("Too much code to jump over.")
	}
	c.chunk().Code[offset] = byte(jump >> 8)
	c.chunk().Code[offset+1] = byte(jump & 0xff)
}

func (c *Compiler) makeConstant(v value.Value) byte {
	if len(c.chunk().Constants) >= value.MaxConstants {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(c.chunk().AddConstant(v))
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitOpByte(value.OpConstant, c.makeConstant(v))
}

// expression parses a single expression at assignment precedence —
// the floor used anywhere a value (not a bare statement) is expected:
// operands, conditions, initializers.
func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// statement compiles one top-level or block-level unit and, unless it
// manages its own stack discipline (a global let consumes its value, a
// local let keeps it as the local's slot, and do leaves the stack
// exactly where it found it), pops the value it produced.
//
// It parses at precAssignment, the same floor expression() uses, not
// precDeclaration: the prefix dispatch below fires let/if/do/print
// regardless of the floor, but the floor also bounds the infix loop
// that follows. A floor as low as precDeclaration would let that loop
// keep going into the next statement's leading token (let/if/do/print
// sit at precDeclaration/precStatement, bare identifiers and strings
// at precLiteral) and call its nil infix function.
func (c *Compiler) statement() {
	startKind := c.current.Kind

	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(unwindStatement); !ok {
					panic(r)
				}
			}
		}()
		c.expression()
	}()

	if startKind != token.Let && startKind != token.Do {
		c.emitOp(value.OpPop)
	}

	for c.match(token.Semicolon) {
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	rule := getRule(c.previous.Kind)
	if rule.prefix == nil {
		c.error("Expect expression.")
		panic(unwindStatement{})
	}

	canAssign := prec <= precAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) number(_ bool) {
	n, _ := strconv.ParseFloat(c.previous.Lexeme, 64)
	c.emitConstant(value.Number(n))
}

func (c *Compiler) string(_ bool) {
	chars := c.previous.Lexeme[1 : len(c.previous.Lexeme)-1]
	c.emitConstant(value.FromObject(c.alloc.InternString(chars)))
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(value.OpFalse)
	case token.Nil:
		c.emitOp(value.OpNil)
	case token.True:
		c.emitOp(value.OpTrue)
	}
}

func (c *Compiler) unary(_ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch opKind {
	case token.Bang:
		c.emitOp(value.OpNot)
	case token.Minus:
		c.emitOp(value.OpNegate)
	}
}

func (c *Compiler) binary(_ bool) {
	opKind := c.previous.Kind
	rule := getRule(opKind)
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.Plus:
		c.emitOp(value.OpAdd)
	case token.Minus:
		c.emitOp(value.OpSubtract)
	case token.Star:
		c.emitOp(value.OpMultiply)
	case token.Slash:
		c.emitOp(value.OpDivide)
	case token.BangEqual:
		c.emitOp(value.OpEq)
		c.emitOp(value.OpNot)
	case token.EqualEqual:
		c.emitOp(value.OpEq)
	case token.Greater:
		c.emitOp(value.OpGreater)
	case token.GreaterEqual:
		c.emitOp(value.OpLess)
		c.emitOp(value.OpNot)
	case token.Less:
		c.emitOp(value.OpLess)
	case token.LessEqual:
		c.emitOp(value.OpGreater)
		c.emitOp(value.OpNot)
	}
}

func (c *Compiler) and_(_ bool) {
	endJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or_(_ bool) {
	elseJump := c.emitJump(value.OpJumpIfFalse)
	endJump := c.emitJump(value.OpJump)

	c.patchJump(elseJump)
	c.emitOp(value.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) print(_ bool) {
	c.expression()
	c.emitOp(value.OpPrint)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp value.OpCode
	arg := c.resolveLocal(name)
	if arg != -1 {
		getOp, setOp = value.OpGetLocal, value.OpSetLocal
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = value.OpGetGlobal, value.OpSetGlobal
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(value.FromObject(c.alloc.InternString(name.Lexeme)))
}

func (c *Compiler) resolveLocal(name token.Token) int {
	for i := c.localCount - 1; i >= 0; i-- {
		l := &c.locals[i]
		if l.name == name.Lexeme {
			if l.depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func (c *Compiler) addLocal(name token.Token) {
	if c.localCount == maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.locals[c.localCount] = local{name: name.Lexeme, depth: -1}
	c.localCount++
}

func (c *Compiler) declareVariable(name token.Token) {
	if c.scopeDepth == 0 {
		return
	}
	for i := c.localCount - 1; i >= 0; i-- {
		l := &c.locals[i]
		if l.depth != -1 && l.depth < c.scopeDepth {
			break
		}
		if l.name == name.Lexeme {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) parseVariable(message string) byte {
	c.consume(token.Identifier, message)
	name := c.previous
	c.declareVariable(name)
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(name)
}

func (c *Compiler) markInitialized() {
	c.locals[c.localCount-1].depth = c.scopeDepth
}

// vardecl compiles `let name [= expr]`. At global scope the value is
// stored via DefineGlobal and the stack returns to its prior depth —
// statement() knows this and skips its usual trailing pop. Inside a
// scope the initializer's pushed value simply becomes the local's
// slot; nothing is popped until the enclosing block ends.
func (c *Compiler) vardecl(_ bool) {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(value.OpNil)
	}

	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(value.OpDefineGlobal, global)
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

func (c *Compiler) endScope() {
	c.scopeDepth--
	for c.localCount > 0 && c.locals[c.localCount-1].depth > c.scopeDepth {
		c.emitOp(value.OpPop)
		c.localCount--
	}
}

// block compiles `do ... end`. It leaves the stack exactly where it
// found it: every inner statement balances itself,
// and endScope pops exactly the locals this block introduced.
func (c *Compiler) block(_ bool) {
	c.beginScope()
	for !c.check(token.End) && !c.check(token.EOF) {
		c.statement()
	}
	c.consume(token.End, "Expect 'end' after block.")
	c.endScope()
}

// ifExpr compiles `if (cond) then-expr [else else-expr] end`. Exactly
// one of the two branches runs and its value is left on the stack —
// if is a value-producing expression, not a statement, so callers
// using it as a bare statement get the usual trailing pop.
func (c *Compiler) ifExpr(_ bool) {
	c.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.expression()

	elseJump := c.emitJump(value.OpJump)
	c.patchJump(thenJump)
	c.emitOp(value.OpPop)

	if c.match(token.Else) {
		c.expression()
	} else {
		c.emitOp(value.OpNil)
	}
	c.patchJump(elseJump)

	c.consume(token.End, "Expect 'end' after if expression.")
}
