package internal

import (
	"strings"

	"skink/internal/tokens"
)

// node is the interface shared by every AST node. The parser is the only
// producer; nothing mutates a node after construction.
type node interface {
	TokenLiteral() string
	String() string
}

type statement interface {
	node
	statementNode()
}

type expression interface {
	node
	expressionNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Statements []statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out strings.Builder
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

type letStatement struct {
	token tokens.Token // the LET token
	name  *identifier
	value expression
}

func (ls *letStatement) statementNode()       {}
func (ls *letStatement) TokenLiteral() string { return ls.token.Literal }
func (ls *letStatement) String() string {
	var out strings.Builder
	out.WriteString(ls.TokenLiteral() + " ")
	out.WriteString(ls.name.String())
	out.WriteString(" = ")
	if ls.value != nil {
		out.WriteString(ls.value.String())
	}
	out.WriteString(";")
	return out.String()
}

type returnStatement struct {
	token       tokens.Token
	returnValue expression
}

func (rs *returnStatement) statementNode()       {}
func (rs *returnStatement) TokenLiteral() string { return rs.token.Literal }
func (rs *returnStatement) String() string {
	var out strings.Builder
	out.WriteString(rs.TokenLiteral())
	if rs.returnValue != nil {
		out.WriteString(" " + rs.returnValue.String())
	}
	out.WriteString(";")
	return out.String()
}

// expressionStatement wraps an expression used in statement position.
type expressionStatement struct {
	token      tokens.Token // first token of the expression
	expression expression
}

func (es *expressionStatement) statementNode()       {}
func (es *expressionStatement) TokenLiteral() string { return es.token.Literal }
func (es *expressionStatement) String() string {
	if es.expression != nil {
		return es.expression.String()
	}
	return ""
}

type blockStatement struct {
	token      tokens.Token // the { token
	statements []statement
}

func (bs *blockStatement) statementNode()       {}
func (bs *blockStatement) TokenLiteral() string { return bs.token.Literal }
func (bs *blockStatement) String() string {
	var out strings.Builder
	for _, s := range bs.statements {
		out.WriteString(s.String())
	}
	return out.String()
}

type identifier struct {
	token tokens.Token
	value string
}

func (i *identifier) expressionNode()      {}
func (i *identifier) TokenLiteral() string { return i.token.Literal }
func (i *identifier) String() string       { return i.value }

type integerLiteral struct {
	token tokens.Token
	value int64
}

func (il *integerLiteral) expressionNode()      {}
func (il *integerLiteral) TokenLiteral() string { return il.token.Literal }
func (il *integerLiteral) String() string       { return il.token.Literal }

type stringLiteral struct {
	token tokens.Token
	value string
}

func (sl *stringLiteral) expressionNode()      {}
func (sl *stringLiteral) TokenLiteral() string { return sl.token.Literal }
func (sl *stringLiteral) String() string       { return sl.token.Literal }

type booleanLiteral struct {
	token tokens.Token
	value bool
}

func (bl *booleanLiteral) expressionNode()      {}
func (bl *booleanLiteral) TokenLiteral() string { return bl.token.Literal }
func (bl *booleanLiteral) String() string       { return bl.token.Literal }

type prefixExpression struct {
	token    tokens.Token // the prefix token, e.g. !
	operator string
	right    expression
}

func (pe *prefixExpression) expressionNode()      {}
func (pe *prefixExpression) TokenLiteral() string { return pe.token.Literal }
func (pe *prefixExpression) String() string {
	return "(" + pe.operator + pe.right.String() + ")"
}

type infixExpression struct {
	token    tokens.Token // the operator token
	left     expression
	operator string
	right    expression
}

func (ie *infixExpression) expressionNode()      {}
func (ie *infixExpression) TokenLiteral() string { return ie.token.Literal }
func (ie *infixExpression) String() string {
	return "(" + ie.left.String() + " " + ie.operator + " " + ie.right.String() + ")"
}

type ifExpression struct {
	token       tokens.Token // the IF token
	condition   expression
	consequence *blockStatement
	alternative *blockStatement
}

func (ie *ifExpression) expressionNode()      {}
func (ie *ifExpression) TokenLiteral() string { return ie.token.Literal }
func (ie *ifExpression) String() string {
	var out strings.Builder
	out.WriteString("if")
	out.WriteString(ie.condition.String())
	out.WriteString(" ")
	out.WriteString(ie.consequence.String())
	if ie.alternative != nil {
		out.WriteString("else ")
		out.WriteString(ie.alternative.String())
	}
	return out.String()
}

type functionLiteral struct {
	token      tokens.Token // the FN token
	parameters []*identifier
	body       *blockStatement
}

func (fl *functionLiteral) expressionNode()      {}
func (fl *functionLiteral) TokenLiteral() string { return fl.token.Literal }
func (fl *functionLiteral) String() string {
	params := make([]string, 0, len(fl.parameters))
	for _, p := range fl.parameters {
		params = append(params, p.String())
	}
	var out strings.Builder
	out.WriteString(fl.TokenLiteral())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(fl.body.String())
	return out.String()
}

type callExpression struct {
	token     tokens.Token // the ( token
	function  expression
	arguments []expression
}

func (ce *callExpression) expressionNode()      {}
func (ce *callExpression) TokenLiteral() string { return ce.token.Literal }
func (ce *callExpression) String() string {
	args := make([]string, 0, len(ce.arguments))
	for _, a := range ce.arguments {
		args = append(args, a.String())
	}
	return ce.function.String() + "(" + strings.Join(args, ", ") + ")"
}

type arrayLiteral struct {
	token    tokens.Token // the [ token
	elements []expression
}

func (al *arrayLiteral) expressionNode()      {}
func (al *arrayLiteral) TokenLiteral() string { return al.token.Literal }
func (al *arrayLiteral) String() string {
	elems := make([]string, 0, len(al.elements))
	for _, e := range al.elements {
		elems = append(elems, e.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// hashPairExpr is one key:value entry of a hash literal. Pairs live in a
// slice so that String output follows source order.
type hashPairExpr struct {
	key   expression
	value expression
}

type hashLiteral struct {
	token tokens.Token // the { token
	pairs []hashPairExpr
}

func (hl *hashLiteral) expressionNode()      {}
func (hl *hashLiteral) TokenLiteral() string { return hl.token.Literal }
func (hl *hashLiteral) String() string {
	pairs := make([]string, 0, len(hl.pairs))
	for _, p := range hl.pairs {
		pairs = append(pairs, p.key.String()+":"+p.value.String())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

type indexExpression struct {
	token tokens.Token // the [ token
	left  expression
	index expression
}

func (ie *indexExpression) expressionNode()      {}
func (ie *indexExpression) TokenLiteral() string { return ie.token.Literal }
func (ie *indexExpression) String() string {
	return "(" + ie.left.String() + "[" + ie.index.String() + "])"
}
