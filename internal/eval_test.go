package internal

import "testing"

func testEval(t *testing.T, input string) Object {
	t.Helper()
	p := NewParser(NewLexer(input))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	ev := &evaluator{}
	return ev.eval(program, NewEnvironment())
}

func testIntegerObject(t *testing.T, obj Object, expected int64) {
	t.Helper()
	result, ok := obj.(*Integer)
	if !ok {
		t.Fatalf("object is %T (%+v), want *Integer", obj, obj)
	}
	if result.Value != expected {
		t.Errorf("integer value: got %d, want %d", result.Value, expected)
	}
}

func testBooleanObject(t *testing.T, obj Object, expected bool) {
	t.Helper()
	result, ok := obj.(*Boolean)
	if !ok {
		t.Fatalf("object is %T (%+v), want *Boolean", obj, obj)
	}
	if result.Value != expected {
		t.Errorf("boolean value: got %t, want %t", result.Value, expected)
	}
}

func testNullObject(t *testing.T, obj Object) {
	t.Helper()
	if obj != NULL {
		t.Fatalf("object is %T (%+v), want the NULL singleton", obj, obj)
	}
}

func testErrorObject(t *testing.T, obj Object, message string) {
	t.Helper()
	err, ok := obj.(*Error)
	if !ok {
		t.Fatalf("object is %T (%+v), want *Error", obj, obj)
	}
	if err.Message != message {
		t.Errorf("error message: got %q, want %q", err.Message, message)
	}
}

func TestEvalIntegerExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"-10", -10},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestDivisionTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"7 / 2", 3},
		{"-7 / 2", -3},
		{"7 / -2", -3},
		{"-7 / -2", 3},
		{"1 / 2", 0},
		{"-1 / 2", 0},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestDivisionByZero(t *testing.T) {
	testErrorObject(t, testEval(t, "5 / 0"), "division by zero")
}

func TestEvalBooleanExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"1 == 2", false},
		{"1 != 2", true},
		{"true == true", true},
		{"false == false", true},
		{"true == false", false},
		{"true != false", true},
		{"(1 < 2) == true", true},
		{"(1 > 2) == true", false},
	}

	for _, tt := range tests {
		testBooleanObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestBangOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!!true", true},
		{"!!false", false},
		{"!!5", true},
		// Zero is truthy; only false and null are falsy.
		{"!0", false},
		{"!!0", true},
	}

	for _, tt := range tests {
		testBooleanObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestIfElseExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"if (true) { 10 }", 10},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", 10},
		{"if (0) { 10 }", 10},
		{"if (1 < 2) { 10 }", 10},
		{"if (1 > 2) { 10 }", nil},
		{"if (1 > 2) { 10 } else { 20 }", 20},
		{"if (1 < 2) { 10 } else { 20 }", 10},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		if expected, ok := tt.expected.(int); ok {
			testIntegerObject(t, evaluated, int64(expected))
		} else {
			testNullObject(t, evaluated)
		}
	}
}

func TestReturnStatementEval(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"return 10;", 10},
		{"return 10; 9;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		// return inside a nested block terminates the whole program, not
		// just the block: blocks do not unwrap ReturnValue.
		{"if (10 > 1) { if (10 > 1) { return 10; } return 1; }", 10},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestLetStatementsEval(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestStringConcatenation(t *testing.T) {
	evaluated := testEval(t, `"Hello" + " " + "World!"`)
	str, ok := evaluated.(*String)
	if !ok {
		t.Fatalf("object is %T, want *String", evaluated)
	}
	if str.Value != "Hello World!" {
		t.Errorf("got %q", str.Value)
	}
}

func TestStringComparisonUnsupported(t *testing.T) {
	testErrorObject(t, testEval(t, `"a" < "b"`), "unknown operator: STRING < STRING")
	testErrorObject(t, testEval(t, `"a" - "b"`), "unknown operator: STRING - STRING")
}

func TestFunctionApplication(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let identity = fn(x) { x; }; identity(5);", 5},
		{"let identity = fn(x) { return x; }; identity(5);", 5},
		{"let double = fn(x) { x * 2; }; double(5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5, 5);", 10},
		{"let add = fn(x, y) { x + y; }; add(5 + 5, add(5, 5));", 20},
		{"fn(x) { x; }(5)", 5},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestFunctionBodyWithoutValueYieldsNull(t *testing.T) {
	tests := []string{
		"fn() {}()",
		"let f = fn() { let a = 1; }; f();",
		"let f = fn(x) { let y = x; }; f(1);",
	}

	for _, input := range tests {
		testNullObject(t, testEval(t, input))
	}

	// The null result must be an ordinary operand, not a leaked nil.
	testBooleanObject(t, testEval(t, "let f = fn() {}; !f();"), true)
	testBooleanObject(t, testEval(t, "let f = fn() { let a = 1; }; f() == f();"), true)
	testErrorObject(t, testEval(t, "let f = fn() { let a = 1; }; f() + 2;"),
		"type mismatch: NULL + INTEGER")
	testNullObject(t, testEval(t, "let x = fn() {}(); x;"))
}

func TestClosures(t *testing.T) {
	input := `
let newAdder = fn(x) { fn(y) { x + y } };
let addTwo = newAdder(2);
addTwo(3);`
	testIntegerObject(t, testEval(t, input), 5)
}

func TestClosuresAreIndependent(t *testing.T) {
	input := `
let newAdder = fn(x) { fn(y) { x + y } };
let addTwo = newAdder(2);
let addTen = newAdder(10);
addTwo(1) + addTen(1);`
	testIntegerObject(t, testEval(t, input), 14)
}

func TestShadowingDoesNotLeak(t *testing.T) {
	input := `
let x = 10;
let f = fn() { let x = 99; x };
f();
x;`
	testIntegerObject(t, testEval(t, input), 10)
}

func TestRecursiveFibonacci(t *testing.T) {
	input := `
let fibonacci = fn(n) {
  if (n < 2) {
    n
  } else {
    fibonacci(n - 1) + fibonacci(n - 2)
  }
};
fibonacci(10);`
	testIntegerObject(t, testEval(t, input), 55)
}

func TestCallArityMismatch(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fn(x) { x }();", "wrong number of arguments. got=0, want=1"},
		{"fn(x) { x }(1, 2);", "wrong number of arguments. got=2, want=1"},
		{"fn() { 1 }(1);", "wrong number of arguments. got=1, want=0"},
	}

	for _, tt := range tests {
		testErrorObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestStackExhaustionIsAnError(t *testing.T) {
	evaluated := testEval(t, "let f = fn() { f() }; f();")
	testErrorObject(t, evaluated,
		"stack overflow: max call depth (10000) exceeded")
}

func TestArrayLiterals(t *testing.T) {
	evaluated := testEval(t, "[1, 2 * 2, 3 + 3]")
	arr, ok := evaluated.(*Array)
	if !ok {
		t.Fatalf("object is %T, want *Array", evaluated)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Elements))
	}
	testIntegerObject(t, arr.Elements[0], 1)
	testIntegerObject(t, arr.Elements[1], 4)
	testIntegerObject(t, arr.Elements[2], 6)
}

func TestArrayIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"[1, 2, 3][0]", 1},
		{"[1, 2, 3][1]", 2},
		{"[1, 2, 3][2]", 3},
		{"let i = 0; [1][i];", 1},
		{"[1, 2, 3][1 + 1];", 3},
		{"let a = [1, 2, 3]; a[2];", 3},
		{"let a = [1, 2, 3]; a[0] + a[1] + a[2];", 6},
		// Out of bounds on either side is null, never an error.
		{"[1, 2, 3][3]", nil},
		{"[1, 2, 3][-1]", nil},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		if expected, ok := tt.expected.(int); ok {
			testIntegerObject(t, evaluated, int64(expected))
		} else {
			testNullObject(t, evaluated)
		}
	}
}

func TestHashLiterals(t *testing.T) {
	input := `let two = "two";
{
  "one": 10 - 9,
  two: 1 + 1,
  "thr" + "ee": 6 / 2,
  4: 4,
  true: 5,
  false: 6
}`
	evaluated := testEval(t, input)
	hash, ok := evaluated.(*Hash)
	if !ok {
		t.Fatalf("object is %T, want *Hash", evaluated)
	}

	expected := map[HashKey]int64{
		(&String{Value: "one"}).HashKey():   1,
		(&String{Value: "two"}).HashKey():   2,
		(&String{Value: "three"}).HashKey(): 3,
		(&Integer{Value: 4}).HashKey():      4,
		TRUE.HashKey():                      5,
		FALSE.HashKey():                     6,
	}
	if len(hash.Pairs) != len(expected) {
		t.Fatalf("got %d pairs, want %d", len(hash.Pairs), len(expected))
	}
	for key, want := range expected {
		pair, ok := hash.Pairs[key]
		if !ok {
			t.Errorf("no pair for key %+v", key)
			continue
		}
		testIntegerObject(t, pair.Value, want)
	}
}

func TestHashIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{`{"one": 1}["one"]`, 1},
		{`{"one": 1}["two"]`, nil},
		{`let key = "one"; {"one": 1}[key]`, 1},
		{`{}["foo"]`, nil},
		{`{5: 5}[5]`, 5},
		{`{true: 5}[true]`, 5},
		{`{false: 5}[false]`, 5},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		if expected, ok := tt.expected.(int); ok {
			testIntegerObject(t, evaluated, int64(expected))
		} else {
			testNullObject(t, evaluated)
		}
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5 + true;", "type mismatch: INTEGER + BOOLEAN"},
		{"5 + true; 5;", "type mismatch: INTEGER + BOOLEAN"},
		{"-true", "unknown operator: -BOOLEAN"},
		{"true + false;", "unknown operator: BOOLEAN + BOOLEAN"},
		{"5; true + false; 5", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { true + false; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { if (10 > 1) { return true + false; } return 1; }",
			"unknown operator: BOOLEAN + BOOLEAN"},
		{"foobar", "identifier not found: foobar"},
		{`"Hello" - "World"`, "unknown operator: STRING - STRING"},
		{"5(3)", "not a function: INTEGER"},
		{"let x = 5; x(3)", "not a function: INTEGER"},
		{"5[0]", "index operator not supported: INTEGER"},
		{`"str"[0]`, "index operator not supported: STRING"},
		{`{"name": "skink"}[fn(x) { x }];`, "unusable as hash key: FUNCTION"},
		{`{fn(x) { x }: "value"}`, "unusable as hash key: FUNCTION"},
		{`{[1]: 2}`, "unusable as hash key: ARRAY"},
		{"let a = true + 1;", "type mismatch: BOOLEAN + INTEGER"},
		{"return true + 1;", "type mismatch: BOOLEAN + INTEGER"},
		{"[1 + true]", "type mismatch: INTEGER + BOOLEAN"},
		{"len(1 + true)", "type mismatch: INTEGER + BOOLEAN"},
	}

	for _, tt := range tests {
		testErrorObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestErrorStopsBinding(t *testing.T) {
	// A failed let must not bind its name.
	evaluated := testEval(t, "let a = true + 1; a;")
	testErrorObject(t, evaluated, "type mismatch: BOOLEAN + INTEGER")
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{`len("")`, 0},
		{`len("four")`, 4},
		{`len("hello world")`, 11},
		{"len([1, 2, 3])", 3},
		{"len([])", 0},
		{"len(1)", "argument to `len` not supported, got INTEGER"},
		{`len("one", "two")`, "wrong number of arguments. got=2, want=1"},
		{"first([1, 2, 3])", 1},
		{"first([])", nil},
		{"first(1)", "argument to `first` must be ARRAY, got INTEGER"},
		{"last([1, 2, 3])", 3},
		{"last([])", nil},
		{"rest([])", nil},
		{"len(rest([1, 2, 3]))", 2},
		{"push([], 1)[0]", 1},
		{"push(1, 1)", "argument to `push` must be ARRAY, got INTEGER"},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		switch expected := tt.expected.(type) {
		case int:
			testIntegerObject(t, evaluated, int64(expected))
		case string:
			testErrorObject(t, evaluated, expected)
		case nil:
			testNullObject(t, evaluated)
		}
	}
}

func TestBuiltinsDoNotMutateArrays(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"let a = [1, 2, 3]; push(a, 4); len(a);", 3},
		{"let a = [1, 2, 3]; rest(a); len(a);", 3},
		{"let a = [1, 2, 3]; rest(a); a[0];", 1},
		{"let a = [1]; let b = push(a, 2); len(b) - len(a);", 1},
	}

	for _, tt := range tests {
		testIntegerObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestFunctionObject(t *testing.T) {
	evaluated := testEval(t, "fn(x) { x + 2; };")
	fn, ok := evaluated.(*Function)
	if !ok {
		t.Fatalf("object is %T, want *Function", evaluated)
	}
	if len(fn.parameters) != 1 || fn.parameters[0].String() != "x" {
		t.Fatalf("unexpected parameters: %+v", fn.parameters)
	}
	if fn.body.String() != "(x + 2)" {
		t.Errorf("body: got %q", fn.body.String())
	}
}

func TestRun(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		result := Run("1 + 2", NewEnvironment())
		if !result.OK() {
			t.Fatalf("unexpected errors: %v", result.Errors)
		}
		testIntegerObject(t, result.Value, 3)
	})

	t.Run("parse errors abort evaluation", func(t *testing.T) {
		result := Run("let = 5;", NewEnvironment())
		if result.OK() {
			t.Fatal("expected parse errors")
		}
		if result.Value != nil {
			t.Errorf("value should be nil on parse failure, got %v", result.Value)
		}
	})

	t.Run("runtime error", func(t *testing.T) {
		result := Run("5 + true", NewEnvironment())
		if result.OK() {
			t.Fatal("expected a runtime error")
		}
		if len(result.Errors) != 1 || result.Errors[0] != "type mismatch: INTEGER + BOOLEAN" {
			t.Errorf("errors: %v", result.Errors)
		}
		if _, ok := result.Value.(*Error); !ok {
			t.Errorf("value should hold the error object, got %T", result.Value)
		}
	})

	t.Run("environment persists across runs", func(t *testing.T) {
		env := NewEnvironment()
		Run("let x = 41;", env)
		result := Run("x + 1", env)
		if !result.OK() {
			t.Fatalf("unexpected errors: %v", result.Errors)
		}
		testIntegerObject(t, result.Value, 42)
	})
}
