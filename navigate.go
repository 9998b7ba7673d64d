package jsontape

// FirstChild returns the index of the first child of token i: for a
// container with children it is i+1; for an empty container it is the
// same as NextSiblingOrFollowing(i) since i+1 already equals next in
// that case; for a leaf it is simply the token immediately following,
// which may or may not exist. The primitive is intentionally naive:
// its correctness for skipping empty containers relies entirely on the
// Next field every container records as it closes.
func FirstChild(i int) int { return i + 1 }

// NextSiblingOrFollowing returns the index of the token immediately
// after the subtree rooted at i: tokens[i].Next for OBJECT/ARRAY, i+1
// for anything else. This is the universal "skip this entire subtree"
// operation.
func NextSiblingOrFollowing(tokens *Tokens, i int) int {
	tok := tokens.At(i)
	if tok.Kind == KindObject || tok.Kind == KindArray {
		return tok.Next
	}
	return i + 1
}

// Children returns the indices of the immediate children of the
// container at index parent, in left-to-right order, using exactly the
// composition described here: compute end via
// NextSiblingOrFollowing, start at FirstChild, advance with
// NextSiblingOrFollowing until the cursor reaches end.
func Children(tokens *Tokens, parent int) []int {
	tok := tokens.At(parent)
	if tok.Children == 0 {
		return nil
	}
	out := make([]int, 0, tok.Children)
	end := NextSiblingOrFollowing(tokens, parent)
	for i := FirstChild(parent); i < end; i = NextSiblingOrFollowing(tokens, i) {
		out = append(out, i)
	}
	return out
}

// ChildByName looks up an OBJECT's immediate member by name, comparing
// against the raw (still-escaped) input lexeme. For names containing
// escapes, compare against Unescape's result instead.
func ChildByName(tokens *Tokens, input []byte, parent int, name string) (int, bool) {
	for _, c := range Children(tokens, parent) {
		tok := tokens.At(c)
		if tok.NameEscaped {
			continue
		}
		if string(input[tok.NameOff:tok.NameOff+tok.NameLen]) == name {
			return c, true
		}
	}
	return 0, false
}
