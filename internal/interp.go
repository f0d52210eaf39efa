package internal

import (
	log "github.com/sirupsen/logrus"
)

// Result is what a single run hands back to the host: the final value (or
// the error object) plus any rendered parse/runtime error text.
type Result struct {
	Value  Object
	Errors []string
}

// OK reports whether the run produced a value free of syntax and runtime
// errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Run parses and evaluates source against env. Parse errors are fatal for
// the run: evaluation is not attempted and Value is nil. A runtime error
// object is returned both as Value and as its rendered message in Errors.
// Each independent execution must use its own root environment.
func Run(source string, env *Environment) Result {
	l := NewLexer(source)
	p := NewParser(l)

	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		log.WithField("errors", len(errs)).Debug("parse failed")
		return Result{Errors: errs}
	}
	log.WithField("statements", len(program.Statements)).Debug("parse ok")

	ev := &evaluator{}
	value := ev.eval(program, env)

	if err, ok := value.(*Error); ok {
		log.WithField("message", err.Message).Debug("runtime error")
		return Result{Value: err, Errors: []string{err.Message}}
	}

	return Result{Value: value}
}
