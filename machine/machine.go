// Package machine binds the rpn interpreter to a CNC machine driver. The
// Interface is the whole boundary: anything that can report position and
// accept motion can back the machine word set. Simulator is the built-in
// implementation, executing G-code against a simulated machine.
package machine

import "github.com/qmill/rpn"

// Interface is the machine driver boundary. Positions are in machine
// coordinates unless a method says otherwise; a Vec3 argument may carry
// unset (NaN) components, meaning "leave this axis alone".
type Interface interface {
	// MPos reports the current machine position.
	MPos() rpn.Vec3
	// WPos reports the current position in work coordinates.
	WPos() rpn.Vec3
	// SetWPos shifts the work coordinate system so the current machine
	// position reads as p.
	SetWPos(p rpn.Vec3) error

	Speed() float64
	SetSpeed(s float64) error
	Feed() float64
	SetFeed(f float64) error

	// JogRel moves by an offset from the current position.
	JogRel(off rpn.Vec3) error
	// JogWork moves to an absolute position in work coordinates.
	JogWork(p rpn.Vec3) error
	// JogMachine moves to an absolute position in machine coordinates.
	JogMachine(p rpn.Vec3) error

	// Probe moves toward target at the given feed until contact.
	Probe(target rpn.Vec3, feed float64) error

	ModalState() string
	SetModalState(state string) error

	// Send passes a raw G-code block straight through to the machine.
	Send(block string) error
}

// Register installs the machine word set into an interpreter session,
// bound to m. Word bodies reach m only through the call context, so one
// word set can serve any number of sessions over any number of machines.
func Register(it *rpn.Interp, m Interface) {
	for _, def := range definitions {
		def.Context = m
		it.AddDefinition(def)
	}
}

func ctxMachine(c *rpn.Call) Interface { return c.Context.(Interface) }

func vec3Params(name string) [][]rpn.Param {
	return [][]rpn.Param{{{Name: name, Type: rpn.KindVec3}}}
}

func numParams(name string) [][]rpn.Param {
	return [][]rpn.Param{{{Name: name, Type: rpn.KindNumber}}}
}

var definitions = []rpn.WordDefinition{
	{
		Name:        "MPOS->",
		Description: "Push the machine position ( -- mpos )",
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			it.Stack.Push(rpn.Vec(ctxMachine(c).MPos()))
			return nil
		},
	},
	{
		Name:        "WPOS->",
		Description: "Push the work position ( -- wpos )",
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			it.Stack.Push(rpn.Vec(ctxMachine(c).WPos()))
			return nil
		},
	},
	{
		Name:        "->WPOS",
		Description: "Set the work position; unset axes are untouched ( wpos -- )",
		Params:      vec3Params("wpos"),
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).SetWPos(v.Vec())
		},
	},
	{
		Name:        "SPEED->",
		Description: "Push the spindle speed ( -- rpm )",
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			it.Stack.Push(rpn.Dbl(ctxMachine(c).Speed()))
			return nil
		},
	},
	{
		Name:        "->SPEED",
		Description: "Set the spindle speed ( rpm -- )",
		Params:      numParams("rpm"),
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).SetSpeed(v.AsDouble())
		},
	},
	{
		Name:        "FEED->",
		Description: "Push the feed rate ( -- feed )",
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			it.Stack.Push(rpn.Dbl(ctxMachine(c).Feed()))
			return nil
		},
	},
	{
		Name:        "->FEED",
		Description: "Set the feed rate ( feed -- )",
		Params:      numParams("feed"),
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).SetFeed(v.AsDouble())
		},
	},
	{
		Name:        "JOG-R",
		Description: "Jog by a relative offset ( off -- )",
		Params:      vec3Params("off"),
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).JogRel(v.Vec())
		},
	},
	{
		Name:        "JOG-WA",
		Description: "Jog to an absolute work position ( wpos -- )",
		Params:      vec3Params("wpos"),
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).JogWork(v.Vec())
		},
	},
	{
		Name:        "JOG-MA",
		Description: "Jog to an absolute machine position ( mpos -- )",
		Params:      vec3Params("mpos"),
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).JogMachine(v.Vec())
		},
	},
	{
		Name:        "PROBE",
		Description: "Probe toward a target at a feed rate ( target feed -- )",
		Params: [][]rpn.Param{{
			{Name: "target", Type: rpn.KindVec3},
			{Name: "feed", Type: rpn.KindNumber},
		}},
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			feed, _ := it.Stack.Pop()
			target, _ := it.Stack.Pop()
			return ctxMachine(c).Probe(target.Vec(), feed.AsDouble())
		},
	},
	{
		Name:        "MODAL-STATE->",
		Description: "Push the modal state string ( -- state )",
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			it.Stack.Push(rpn.Str(ctxMachine(c).ModalState()))
			return nil
		},
	},
	{
		Name:        "->MODAL-STATE",
		Description: "Restore a modal state string ( state -- )",
		Params:      [][]rpn.Param{{{Name: "state", Type: rpn.KindString}}},
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).SetModalState(v.Str())
		},
	},
	{
		Name:        "SEND",
		Description: "Send a raw G-code block ( block -- )",
		Params:      [][]rpn.Param{{{Name: "block", Type: rpn.KindString}}},
		Eval: func(it *rpn.Interp, c *rpn.Call) error {
			v, _ := it.Stack.Pop()
			return ctxMachine(c).Send(v.Str())
		},
	},
}
