package filter

import (
	"github.com/s0up4200/relfetch/github"
)

// Matcher decides whether a release asset is selected
type Matcher interface {
	// Match checks if an asset matches the filter criteria
	Match(asset github.Asset) bool
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (*AssetFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

var (
	_ Matcher         = (*AssetFilter)(nil)
	_ CachingCompiler = (*ExprCompiler)(nil)
)
