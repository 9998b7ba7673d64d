package jsontape

// ParserOption configures a Parser at construction time. The pattern
// follows the standard functional-options idiom.
type ParserOption func(p *Parser) error

// WithAllocator installs a custom reallocation policy. It
// combines with WithFixedCapacity: supply both to use the fixed buffer
// first and fall back to the policy once it is exhausted.
func WithAllocator(alloc Allocator) ParserOption {
	return func(p *Parser) error {
		p.tokens.alloc = alloc
		return nil
	}
}

// WithFixedCapacity pre-allocates room for exactly capacity usable
// tokens and disables growth: Parse then fails with ErrCapacity once
// capacity is exhausted. Pass WithAllocator after WithFixedCapacity in
// the option list to re-enable growth as a fallback once the fixed
// buffer fills.
func WithFixedCapacity(capacity int) ParserOption {
	return func(p *Parser) error {
		p.tokens.buf = make([]Token, 0, capacity+1)
		p.tokens.alloc = nil
		return nil
	}
}

// WithMaxDepth overrides the default nesting-depth limit: unbounded
// nesting is not otherwise rejected, so this guards against a goroutine
// stack blowout on pathological input before the token store itself
// would refuse further allocations, the same way a recursive descent parser bounds
// depth with a fixed constant (scaled up here since we do not keep a
// fixed per-depth array).
func WithMaxDepth(depth int) ParserOption {
	return func(p *Parser) error {
		p.maxDepth = depth
		return nil
	}
}

// WithBOMTolerance toggles whether a leading UTF-8 BOM is consumed
// silently (the default). Disabling it makes a
// leading BOM a syntax error instead.
func WithBOMTolerance(tolerate bool) ParserOption {
	return func(p *Parser) error {
		p.tolerateBOM = tolerate
		return nil
	}
}
