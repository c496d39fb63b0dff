package rpn

// Stack is an ordered sequence of Values whose back is the top. Positions
// are 1-based distances from the top, so Peek(1) is the top element and
// Peek(Depth()) is the bottom. Operations taking an N count positions on
// the stack as it stands when they run; words that pop an N operand do so
// before calling down here.
type Stack struct {
	vals []Value
}

func (st *Stack) Push(v Value) { st.vals = append(st.vals, v) }

func (st *Stack) Pop() (Value, error) {
	if len(st.vals) == 0 {
		return Value{}, ErrUnderflow
	}
	v := st.vals[len(st.vals)-1]
	st.vals = st.vals[:len(st.vals)-1]
	return v, nil
}

func (st *Stack) Peek(n int) (Value, error) {
	if n < 1 || n > len(st.vals) {
		return Value{}, ErrUnderflow
	}
	return st.vals[len(st.vals)-n], nil
}

func (st *Stack) Depth() int { return len(st.vals) }

func (st *Stack) Clear() { st.vals = st.vals[:0] }

// Swap exchanges the top two elements.
func (st *Stack) Swap() error {
	if len(st.vals) < 2 {
		return ErrUnderflow
	}
	i := len(st.vals) - 1
	st.vals[i], st.vals[i-1] = st.vals[i-1], st.vals[i]
	return nil
}

// RotateUp moves the bottom element to the top. Depth under 2 is a no-op:
// there is nothing to rotate.
func (st *Stack) RotateUp() {
	if len(st.vals) < 2 {
		return
	}
	v := st.vals[0]
	copy(st.vals, st.vals[1:])
	st.vals[len(st.vals)-1] = v
}

// RotateDown moves the top element to the bottom.
func (st *Stack) RotateDown() {
	if len(st.vals) < 2 {
		return
	}
	v := st.vals[len(st.vals)-1]
	copy(st.vals[1:], st.vals[:len(st.vals)-1])
	st.vals[0] = v
}

// RollUp moves the element at position n to the top, closing the gap.
func (st *Stack) RollUp(n int) error {
	i, err := st.index(n)
	if err != nil {
		return err
	}
	v := st.vals[i]
	copy(st.vals[i:], st.vals[i+1:])
	st.vals[len(st.vals)-1] = v
	return nil
}

// RollDown moves the top element to position n, shifting the elements
// between up by one.
func (st *Stack) RollDown(n int) error {
	i, err := st.index(n)
	if err != nil {
		return err
	}
	v := st.vals[len(st.vals)-1]
	copy(st.vals[i+1:], st.vals[i:len(st.vals)-1])
	st.vals[i] = v
	return nil
}

// Pick copies the element at position n to the top.
func (st *Stack) Pick(n int) error {
	v, err := st.Peek(n)
	if err != nil {
		return err
	}
	st.Push(v)
	return nil
}

// NipN removes the element at position n.
func (st *Stack) NipN(n int) error {
	i, err := st.index(n)
	if err != nil {
		return err
	}
	st.vals = append(st.vals[:i], st.vals[i+1:]...)
	return nil
}

// TuckN inserts a copy of the top element at position n; the elements
// from position n down shift one position deeper.
func (st *Stack) TuckN(n int) error {
	i, err := st.index(n)
	if err != nil {
		return err
	}
	v := st.vals[len(st.vals)-1]
	st.vals = append(st.vals, Value{})
	copy(st.vals[i+2:], st.vals[i+1:])
	st.vals[i+1] = v
	return nil
}

// DropN removes the top n elements.
func (st *Stack) DropN(n int) error {
	if n < 0 || n > len(st.vals) {
		return ErrUnderflow
	}
	st.vals = st.vals[:len(st.vals)-n]
	return nil
}

// DupN copies the top n elements in order, so the stack a b c becomes
// a b c b c after DupN(2).
func (st *Stack) DupN(n int) error {
	if n < 0 || n > len(st.vals) {
		return ErrUnderflow
	}
	st.vals = append(st.vals, st.vals[len(st.vals)-n:]...)
	return nil
}

// Reverse reverses the entire stack.
func (st *Stack) Reverse() {
	for i, j := 0, len(st.vals)-1; i < j; i, j = i+1, j-1 {
		st.vals[i], st.vals[j] = st.vals[j], st.vals[i]
	}
}

// ReverseN reverses the top n elements.
func (st *Stack) ReverseN(n int) error {
	if n < 0 || n > len(st.vals) {
		return ErrUnderflow
	}
	for i, j := len(st.vals)-n, len(st.vals)-1; i < j; i, j = i+1, j-1 {
		st.vals[i], st.vals[j] = st.vals[j], st.vals[i]
	}
	return nil
}

// PeekInteger returns the integer at position n; a value of any other
// kind is an evaluation error.
func (st *Stack) PeekInteger(n int) (int64, error) {
	v, err := st.peekKind(n, KindInteger)
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// PeekDouble returns the numeric value at position n widened to a double.
func (st *Stack) PeekDouble(n int) (float64, error) {
	v, err := st.Peek(n)
	if err != nil {
		return 0, err
	}
	if k := v.Kind(); k != KindDouble && k != KindInteger {
		return 0, evalErrorf("position %d holds a %v, not a number", n, k)
	}
	return v.AsDouble(), nil
}

// PeekString returns the string at position n.
func (st *Stack) PeekString(n int) (string, error) {
	v, err := st.peekKind(n, KindString)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// PeekBoolean returns the boolean at position n.
func (st *Stack) PeekBoolean(n int) (bool, error) {
	v, err := st.peekKind(n, KindBoolean)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

// PopString pops the top of the stack, which must be a string.
func (st *Stack) PopString() (string, error) {
	v, err := st.peekKind(1, KindString)
	if err != nil {
		return "", err
	}
	st.vals = st.vals[:len(st.vals)-1]
	return v.Str(), nil
}

// PeekAsString returns the bare rendering of the value at position n,
// whatever its kind.
func (st *Stack) PeekAsString(n int) (string, error) {
	v, err := st.Peek(n)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (st *Stack) peekKind(n int, k Kind) (Value, error) {
	v, err := st.Peek(n)
	if err != nil {
		return Value{}, err
	}
	if v.Kind() != k {
		return Value{}, evalErrorf("position %d holds a %v, not a %v", n, v.Kind(), k)
	}
	return v, nil
}

func (st *Stack) index(n int) (int, error) {
	if n < 1 || n > len(st.vals) {
		return 0, ErrUnderflow
	}
	return len(st.vals) - n, nil
}
