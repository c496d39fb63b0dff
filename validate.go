package rpn

// accepts reports whether a declared parameter type admits a live value
// kind. KindNumber admits either numeric kind; KindAny admits everything.
func accepts(want, got Kind) bool {
	switch want {
	case KindNumber:
		return got == KindInteger || got == KindDouble
	case KindAny:
		return true
	}
	return want == got
}

// selectSignature picks the first signature, in declaration order, that
// the live stack satisfies. The stack is never mutated. A word with no
// declared signatures matches any stack with index -1; an empty signature
// within the set matches any stack at its own index. ok is false when no
// signature matches, including when the stack is too shallow for every
// non-empty signature.
func selectSignature(sigs [][]Param, st *Stack) (sig int, ok bool) {
	if len(sigs) == 0 {
		return -1, true
	}
	for i, params := range sigs {
		if len(params) > st.Depth() {
			continue
		}
		ok := true
		for j, p := range params {
			// Push order: the first parameter is the deepest of the
			// consumed block.
			v, _ := st.Peek(len(params) - j)
			if !accepts(p.Type, v.Kind()) {
				ok = false
				break
			}
		}
		if ok {
			return i, true
		}
	}
	return 0, false
}
