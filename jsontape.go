package jsontape

// Parse tokenizes b using reuse if supplied (its token store is reset
// and overwritten in place) or a freshly constructed Parser otherwise,
// a convenience wrapper around Parser.Parse, taking an optional reuse
// *Parser) convenience function.
func Parse(b []byte, reuse *Parser) (*Parser, error) {
	p := reuse
	if p == nil {
		var err error
		p, err = NewParser()
		if err != nil {
			return nil, err
		}
	}
	if err := p.Parse(b); err != nil {
		return nil, err
	}
	return p, nil
}
