package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/relfetch/github"
)

// AssetFilter is a compiled expression evaluated against release assets.
// It is safe for concurrent use.
type AssetFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures an ExprCompiler
type CompilerOption func(*ExprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newFilterCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// ExprCompiler compiles asset filter expressions written in the expr language.
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *filterCache
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter.
// Unknown identifiers and non-boolean expressions are rejected here rather
// than at evaluation time.
func (c *ExprCompiler) Compile(expression string) (*AssetFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile against a zero asset so field types are checked
	program, err := expr.Compile(expression,
		expr.Env(createRuntimeEnvironment(github.Asset{}, c.helperFuncs)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	filter := &AssetFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *ExprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match reports whether asset satisfies the filter. An evaluation error
// counts as no match.
func (f *AssetFilter) Match(asset github.Asset) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(asset, f.helpers))
	if err != nil {
		return false
	}

	// AsBool at compile time guarantees the type
	return result.(bool)
}

// Select returns the assets that match, in their original order
func (f *AssetFilter) Select(assets []github.Asset) []github.Asset {
	selected := make([]github.Asset, 0, len(assets))
	for _, asset := range assets {
		if f.Match(asset) {
			selected = append(selected, asset)
		}
	}
	return selected
}

// Expression returns the original expression
func (f *AssetFilter) Expression() string {
	return f.expression
}

// String implements fmt.Stringer
func (f *AssetFilter) String() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Size helpers
	env["sizeMB"] = func(bytes int64) float64 {
		return float64(bytes) / (1 << 20)
	}
	env["now"] = time.Now
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(asset github.Asset, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+10)

	maps.Copy(env, helpers)

	env["Asset"] = asset

	env["Name"] = asset.Name
	env["Label"] = asset.Label
	env["ContentType"] = asset.ContentType
	env["State"] = asset.State
	env["Size"] = asset.Size
	env["DownloadCount"] = asset.DownloadCount
	env["CreatedAt"] = asset.CreatedAt
	env["UpdatedAt"] = asset.UpdatedAt
	env["URL"] = asset.BrowserDownloadURL

	return env
}
