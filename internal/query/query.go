// Package query runs JavaScript snippets against a loaded documentation tree.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/itsmostafa/godoxy/internal/doxygen"
)

// Config holds limits for a script execution.
type Config struct {
	// Timeout bounds a single execution. Zero or negative means the
	// default timeout.
	Timeout time.Duration

	// MaxOutputChars truncates the printed output
	MaxOutputChars int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxOutputChars: 100000,
	}
}

// Tree is the part of the loader a script can see.
type Tree interface {
	Root() *doxygen.Node
	Find(refid string) (*doxygen.Node, error)
}

// Result is the outcome of a script execution.
type Result struct {
	// Output holds everything written with print or console.log
	Output string
	// Value is the JSON encoding of the final expression, empty when it is
	// undefined or null
	Value     string
	Truncated bool
	Error     error
}

// Runner executes scripts with a fresh goja runtime per call.
type Runner struct {
	tree   Tree
	config Config
}

// NewRunner creates a new Runner over tree.
func NewRunner(tree Tree, config Config) *Runner {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return &Runner{
		tree:   tree,
		config: config,
	}
}

// Execute runs code. The runtime exposes:
//
//	tree                 the whole tree as nested objects
//	find(refid)          the data of a Node, or null
//	children(refid)      summaries of a Node's children, or null
//	search(name, kind?)  summaries of Nodes whose name contains name
//	print(...), console.log(...)
func (r *Runner) Execute(ctx context.Context, code string) *Result {
	vm := goja.New()

	timeoutCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	go func() {
		<-timeoutCtx.Done()
		vm.Interrupt("execution timeout or cancelled")
	}()

	var printed strings.Builder
	if err := r.setupEnvironment(vm, &printed); err != nil {
		return &Result{Error: fmt.Errorf("failed to setup environment: %w", err)}
	}

	val, err := vm.RunString(code)
	if err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			return &Result{Output: printed.String(), Error: fmt.Errorf("execution interrupted: %s", interrupted.Value())}
		}
		return &Result{Output: printed.String(), Error: fmt.Errorf("execution error: %w", err)}
	}

	res := &Result{Output: printed.String()}
	if r.config.MaxOutputChars > 0 && len(res.Output) > r.config.MaxOutputChars {
		res.Output = res.Output[:r.config.MaxOutputChars]
		res.Truncated = true
	}
	if val != nil && !goja.IsUndefined(val) && !goja.IsNull(val) {
		b, err := json.MarshalIndent(val.Export(), "", "  ")
		if err != nil {
			res.Error = fmt.Errorf("failed to encode result: %w", err)
			return res
		}
		res.Value = string(b)
	}
	return res
}

func (r *Runner) setupEnvironment(vm *goja.Runtime, printed *strings.Builder) error {
	root := r.tree.Root()
	if err := vm.Set("tree", root.Tree()); err != nil {
		return fmt.Errorf("failed to set tree: %w", err)
	}

	find := func(refid string) any {
		n, err := r.tree.Find(refid)
		if err != nil {
			return nil
		}
		return n.Data()
	}
	if err := vm.Set("find", find); err != nil {
		return fmt.Errorf("failed to set find: %w", err)
	}

	children := func(refid string) any {
		n, err := r.tree.Find(refid)
		if err != nil {
			return nil
		}
		return summaries(n.Children)
	}
	if err := vm.Set("children", children); err != nil {
		return fmt.Errorf("failed to set children: %w", err)
	}

	search := func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("search requires at least 1 argument: name"))
		}
		var kind doxygen.Kind
		if len(call.Arguments) >= 2 && !goja.IsUndefined(call.Arguments[1]) {
			kind = doxygen.Kind(call.Arguments[1].String())
		}
		return vm.ToValue(summaries(root.Search(call.Arguments[0].String(), kind)))
	}
	if err := vm.Set("search", search); err != nil {
		return fmt.Errorf("failed to set search: %w", err)
	}

	printFunc := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}
		printed.WriteString(strings.Join(args, " "))
		printed.WriteString("\n")
		return goja.Undefined()
	}
	if err := vm.Set("print", printFunc); err != nil {
		return fmt.Errorf("failed to set print: %w", err)
	}

	console := vm.NewObject()
	if err := console.Set("log", printFunc); err != nil {
		return fmt.Errorf("failed to set console.log: %w", err)
	}
	if err := vm.Set("console", console); err != nil {
		return fmt.Errorf("failed to set console: %w", err)
	}
	return nil
}

func summaries(nodes []*doxygen.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Summary())
	}
	return out
}
