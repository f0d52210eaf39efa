package internal

import "fmt"

// builtins is the native-function registry the evaluator consults when an
// identifier misses the environment chain.
var builtins = map[string]*Builtin{
	"len":   {Fn: builtinLen},
	"first": {Fn: builtinFirst},
	"last":  {Fn: builtinLast},
	"rest":  {Fn: builtinRest},
	"push":  {Fn: builtinPush},
	"puts":  {Fn: builtinPuts},
}

// lookupBuiltin implements the registry contract: name to native function.
func lookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

func builtinLen(args ...Object) Object {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	switch arg := args[0].(type) {
	case *String:
		return &Integer{Value: int64(len(arg.Value))}
	case *Array:
		return &Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to `len` not supported, got %s", args[0].Type())
	}
}

func builtinFirst(args ...Object) Object {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `first` must be ARRAY, got %s", args[0].Type())
	}
	if len(arr.Elements) > 0 {
		return arr.Elements[0]
	}
	return NULL
}

func builtinLast(args ...Object) Object {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `last` must be ARRAY, got %s", args[0].Type())
	}
	if n := len(arr.Elements); n > 0 {
		return arr.Elements[n-1]
	}
	return NULL
}

// builtinRest returns a new array holding everything but the first element;
// the input array is never touched.
func builtinRest(args ...Object) Object {
	if len(args) != 1 {
		return newError("wrong number of arguments. got=%d, want=1", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `rest` must be ARRAY, got %s", args[0].Type())
	}
	if n := len(arr.Elements); n > 0 {
		rest := make([]Object, n-1)
		copy(rest, arr.Elements[1:])
		return &Array{Elements: rest}
	}
	return NULL
}

// builtinPush returns a new array with the element appended; the input
// array is never touched.
func builtinPush(args ...Object) Object {
	if len(args) != 2 {
		return newError("wrong number of arguments. got=%d, want=2", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to `push` must be ARRAY, got %s", args[0].Type())
	}
	n := len(arr.Elements)
	elems := make([]Object, n+1)
	copy(elems, arr.Elements)
	elems[n] = args[1]
	return &Array{Elements: elems}
}

func builtinPuts(args ...Object) Object {
	for _, arg := range args {
		fmt.Println(arg.Inspect())
	}
	return NULL
}
