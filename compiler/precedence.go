package compiler

// precedence levels, lowest to highest. Declaration and Statement are
// pseudo-statement rungs below every real expression precedence: they
// exist only so let/if/do/print can sit in the same prefix-rule table
// as ordinary expressions without being reachable as anyone's operand.
type precedence int

const (
	precNone precedence = iota
	precDeclaration
	precStatement
	precLiteral
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)
