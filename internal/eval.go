package internal

import "fmt"

// maxCallDepth bounds language-level recursion. Loops in this language are
// recursive calls, so a runaway program would otherwise take down the host
// stack; at the limit evaluation produces a regular error object instead.
const maxCallDepth = 10000

// evaluator walks the AST. Its only state is the call-depth counter; all
// bindings live in the environment chain passed alongside each node.
type evaluator struct {
	depth int
}

// eval dispatches on node kind. Every composite rule checks each
// sub-evaluation for an error object and propagates it without further work.
func (ev *evaluator) eval(n node, env *Environment) Object {
	switch n := n.(type) {
	case *Program:
		return ev.evalProgram(n, env)
	case *expressionStatement:
		return ev.eval(n.expression, env)
	case *blockStatement:
		return ev.evalBlockStatement(n, env)
	case *letStatement:
		val := ev.eval(n.value, env)
		if isError(val) {
			return val
		}
		env.set(n.name.value, val)
		return nil
	case *returnStatement:
		val := ev.eval(n.returnValue, env)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}
	case *integerLiteral:
		return &Integer{Value: n.value}
	case *stringLiteral:
		return &String{Value: n.value}
	case *booleanLiteral:
		return nativeBoolToBooleanObject(n.value)
	case *prefixExpression:
		right := ev.eval(n.right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(n.operator, right)
	case *infixExpression:
		left := ev.eval(n.left, env)
		if isError(left) {
			return left
		}
		right := ev.eval(n.right, env)
		if isError(right) {
			return right
		}
		return evalInfixExpression(n.operator, left, right)
	case *ifExpression:
		return ev.evalIfExpression(n, env)
	case *identifier:
		return evalIdentifier(n, env)
	case *functionLiteral:
		return &Function{parameters: n.parameters, body: n.body, env: env}
	case *callExpression:
		fn := ev.eval(n.function, env)
		if isError(fn) {
			return fn
		}
		args := ev.evalExpressions(n.arguments, env)
		if len(args) == 1 && isError(args[0]) {
			return args[0]
		}
		return ev.applyFunction(fn, args)
	case *arrayLiteral:
		elems := ev.evalExpressions(n.elements, env)
		if len(elems) == 1 && isError(elems[0]) {
			return elems[0]
		}
		return &Array{Elements: elems}
	case *hashLiteral:
		return ev.evalHashLiteral(n, env)
	case *indexExpression:
		left := ev.eval(n.left, env)
		if isError(left) {
			return left
		}
		idx := ev.eval(n.index, env)
		if isError(idx) {
			return idx
		}
		return evalIndexExpression(left, idx)
	}

	return nil
}

// evalProgram unwraps a trailing ReturnValue so the host never sees the
// internal marker. Blocks deliberately do not unwrap: that difference is
// what lets return inside a nested block terminate the whole call.
func (ev *evaluator) evalProgram(program *Program, env *Environment) Object {
	var result Object

	for _, stmt := range program.Statements {
		result = ev.eval(stmt, env)

		switch result := result.(type) {
		case *ReturnValue:
			return result.Value
		case *Error:
			return result
		}
	}

	return result
}

func (ev *evaluator) evalBlockStatement(block *blockStatement, env *Environment) Object {
	var result Object

	for _, stmt := range block.statements {
		result = ev.eval(stmt, env)

		if result != nil {
			rt := result.Type()
			if rt == RETURN_VALUE_OBJ || rt == ERROR_OBJ {
				return result
			}
		}
	}

	return result
}

func (ev *evaluator) evalIfExpression(ie *ifExpression, env *Environment) Object {
	condition := ev.eval(ie.condition, env)
	if isError(condition) {
		return condition
	}

	if isTruthy(condition) {
		return ev.eval(ie.consequence, env)
	}
	if ie.alternative != nil {
		return ev.eval(ie.alternative, env)
	}
	return NULL
}

// evalExpressions evaluates left to right, stopping at the first error; the
// error comes back as a single-element slice.
func (ev *evaluator) evalExpressions(exprs []expression, env *Environment) []Object {
	result := make([]Object, 0, len(exprs))

	for _, e := range exprs {
		evaluated := ev.eval(e, env)
		if isError(evaluated) {
			return []Object{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

func (ev *evaluator) applyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Function:
		if len(args) != len(fn.parameters) {
			return newError("wrong number of arguments. got=%d, want=%d",
				len(args), len(fn.parameters))
		}
		if ev.depth >= maxCallDepth {
			return newError("stack overflow: max call depth (%d) exceeded", maxCallDepth)
		}
		ev.depth++
		extended := extendFunctionEnv(fn, args)
		evaluated := ev.eval(fn.body, extended)
		ev.depth--
		return unwrapReturnValue(evaluated)
	case *Builtin:
		return fn.Fn(args...)
	default:
		return newError("not a function: %s", fn.Type())
	}
}

// extendFunctionEnv builds the per-call frame: parameters bound over the
// function's captured definition-time environment.
func extendFunctionEnv(fn *Function, args []Object) *Environment {
	env := newEnclosedEnvironment(fn.env)
	for i, param := range fn.parameters {
		env.set(param.value, args[i])
	}
	return env
}

// unwrapReturnValue also maps an absent result to the NULL singleton: a
// body with no explicit return and no trailing expression (empty, or
// ending in a let statement) produces nothing, and a call always yields a
// value.
func unwrapReturnValue(obj Object) Object {
	if rv, ok := obj.(*ReturnValue); ok {
		return rv.Value
	}
	if obj == nil {
		return NULL
	}
	return obj
}

func (ev *evaluator) evalHashLiteral(n *hashLiteral, env *Environment) Object {
	pairs := make(map[HashKey]HashPair)

	for _, pair := range n.pairs {
		key := ev.eval(pair.key, env)
		if isError(key) {
			return key
		}
		hashKey, ok := key.(hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Type())
		}
		value := ev.eval(pair.value, env)
		if isError(value) {
			return value
		}
		pairs[hashKey.HashKey()] = HashPair{Key: key, Value: value}
	}

	return &Hash{Pairs: pairs}
}

func evalIdentifier(n *identifier, env *Environment) Object {
	if val, ok := env.get(n.value); ok {
		return val
	}
	if builtin, ok := lookupBuiltin(n.value); ok {
		return builtin
	}
	return newError("identifier not found: " + n.value)
}

func evalPrefixExpression(operator string, right Object) Object {
	switch operator {
	case "!":
		return evalBangOperatorExpression(right)
	case "-":
		return evalMinusPrefixOperatorExpression(right)
	default:
		return newError("unknown operator: %s%s", operator, right.Type())
	}
}

// evalBangOperatorExpression negates truthiness: false and null are falsy,
// everything else (integer 0 included) is truthy.
func evalBangOperatorExpression(right Object) Object {
	switch right {
	case TRUE:
		return FALSE
	case FALSE:
		return TRUE
	case NULL:
		return TRUE
	default:
		return FALSE
	}
}

func evalMinusPrefixOperatorExpression(right Object) Object {
	if right.Type() != INTEGER_OBJ {
		return newError("unknown operator: -%s", right.Type())
	}
	value := right.(*Integer).Value
	return &Integer{Value: -value}
}

func evalInfixExpression(operator string, left, right Object) Object {
	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfixExpression(operator, left, right)
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringInfixExpression(operator, left, right)
	case operator == "==":
		// Identity: only true when both sides are the same singleton.
		return nativeBoolToBooleanObject(left == right)
	case operator == "!=":
		return nativeBoolToBooleanObject(left != right)
	case left.Type() != right.Type():
		return newError("type mismatch: %s %s %s", left.Type(), operator, right.Type())
	default:
		return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
}

// evalIntegerInfixExpression applies arithmetic and comparison; division is
// Go int64 division, truncating toward zero.
func evalIntegerInfixExpression(operator string, left, right Object) Object {
	leftVal := left.(*Integer).Value
	rightVal := right.(*Integer).Value

	switch operator {
	case "+":
		return &Integer{Value: leftVal + rightVal}
	case "-":
		return &Integer{Value: leftVal - rightVal}
	case "*":
		return &Integer{Value: leftVal * rightVal}
	case "/":
		if rightVal == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: leftVal / rightVal}
	case "<":
		return nativeBoolToBooleanObject(leftVal < rightVal)
	case ">":
		return nativeBoolToBooleanObject(leftVal > rightVal)
	case "==":
		return nativeBoolToBooleanObject(leftVal == rightVal)
	case "!=":
		return nativeBoolToBooleanObject(leftVal != rightVal)
	default:
		return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
}

func evalStringInfixExpression(operator string, left, right Object) Object {
	if operator != "+" {
		return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
	leftVal := left.(*String).Value
	rightVal := right.(*String).Value
	return &String{Value: leftVal + rightVal}
}

func evalIndexExpression(left, idx Object) Object {
	switch {
	case left.Type() == ARRAY_OBJ && idx.Type() == INTEGER_OBJ:
		return evalArrayIndexExpression(left, idx)
	case left.Type() == HASH_OBJ:
		return evalHashIndexExpression(left, idx)
	default:
		return newError("index operator not supported: %s", left.Type())
	}
}

// evalArrayIndexExpression yields null for any index outside [0, len),
// never an error.
func evalArrayIndexExpression(array, idx Object) Object {
	arr := array.(*Array)
	i := idx.(*Integer).Value
	max := int64(len(arr.Elements) - 1)

	if i < 0 || i > max {
		return NULL
	}
	return arr.Elements[i]
}

func evalHashIndexExpression(hash, idx Object) Object {
	h := hash.(*Hash)

	key, ok := idx.(hashable)
	if !ok {
		return newError("unusable as hash key: %s", idx.Type())
	}

	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return NULL
	}
	return pair.Value
}

func nativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

func isTruthy(obj Object) bool {
	switch obj {
	case NULL, FALSE:
		return false
	default:
		return true
	}
}
