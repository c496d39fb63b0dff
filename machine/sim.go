package machine

import (
	"bufio"
	"fmt"
	"math"
	"strings"

	"github.com/leftmike/gcode/engine"
	"github.com/leftmike/gcode/parser"

	"github.com/qmill/rpn"
)

const defaultModal = "G0 G54 G17 G21 G90 G94 M5 M9"

// Simulator implements Interface against a G-code engine instead of
// hardware. Jogs are rendered to G-code blocks; every block, sent or
// jogged, runs through the engine, whose motion callbacks update the
// simulated machine position. Probes complete instantly at their target.
type Simulator struct {
	pos   rpn.Vec3 // machine position
	wco   rpn.Vec3 // work coordinate offset
	feed  float64
	speed float64
	modal string
	trip  rpn.Vec3

	// History records every G-code block executed, in order.
	History []string
}

func NewSimulator() *Simulator {
	return &Simulator{modal: defaultModal}
}

// engine.Machine callbacks; SetFeed doubles as the Interface method.

func (sim *Simulator) SetFeed(feed float64) error {
	sim.feed = feed
	return nil
}

func (sim *Simulator) RapidTo(pos engine.Position) error {
	sim.pos = rpn.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
	return nil
}

func (sim *Simulator) LinearTo(pos engine.Position) error {
	sim.pos = rpn.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
	return nil
}

func (sim *Simulator) MPos() rpn.Vec3 { return sim.pos }

func (sim *Simulator) WPos() rpn.Vec3 { return sim.pos.Sub(sim.wco) }

// SetWPos shifts the work offset so the current machine position reads as
// p; axes p leaves unset keep their current offset.
func (sim *Simulator) SetWPos(p rpn.Vec3) error {
	want := overlay(sim.WPos(), p)
	sim.wco = sim.pos.Sub(want)
	return nil
}

func (sim *Simulator) Speed() float64 { return sim.speed }

func (sim *Simulator) SetSpeed(s float64) error {
	sim.speed = s
	return nil
}

func (sim *Simulator) Feed() float64 { return sim.feed }

func (sim *Simulator) JogRel(off rpn.Vec3) error {
	return sim.Send(renderMove("G0", sim.pos.Add(off)))
}

func (sim *Simulator) JogWork(p rpn.Vec3) error {
	target := overlay(sim.WPos(), p).Add(sim.wco)
	return sim.Send(renderMove("G0", target))
}

func (sim *Simulator) JogMachine(p rpn.Vec3) error {
	return sim.Send(renderMove("G0", overlay(sim.pos, p)))
}

// Probe records the probe block and trips at the target: a simulated
// machine touches whatever it is told to touch.
func (sim *Simulator) Probe(target rpn.Vec3, feed float64) error {
	sim.feed = feed
	block := renderMove("G38.2", overlay(sim.pos, target)) + fmt.Sprintf(" F%s", trimFloat(feed))
	sim.History = append(sim.History, block)
	sim.pos = overlay(sim.pos, target)
	sim.trip = sim.pos
	return nil
}

// TripPoint reports the machine position of the last probe contact.
func (sim *Simulator) TripPoint() rpn.Vec3 { return sim.trip }

func (sim *Simulator) ModalState() string { return sim.modal }

func (sim *Simulator) SetModalState(state string) error {
	sim.modal = state
	return nil
}

// Send executes one G-code block against a fresh engine over this
// machine. A fresh engine per block keeps blocks independent, the way a
// controller's modal state is carried here by the modal string rather
// than parser state.
func (sim *Simulator) Send(block string) error {
	sim.History = append(sim.History, block)
	eng := engine.NewEngine(sim, parser.BeagleG)
	return eng.Evaluate(bufio.NewReader(strings.NewReader(block + "\n")))
}

// overlay fills the unset components of p from base, yielding a concrete
// target for an absolute move.
func overlay(base, p rpn.Vec3) rpn.Vec3 {
	pick := func(b, v float64) float64 {
		if math.IsNaN(v) {
			return b
		}
		return v
	}
	return rpn.Vec3{
		X: pick(base.X, p.X),
		Y: pick(base.Y, p.Y),
		Z: pick(base.Z, p.Z),
	}
}

func renderMove(prefix string, target rpn.Vec3) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, axis := range []struct {
		letter byte
		value  float64
	}{{'X', target.X}, {'Y', target.Y}, {'Z', target.Z}} {
		if !math.IsNaN(axis.value) {
			fmt.Fprintf(&sb, " %c%s", axis.letter, trimFloat(axis.value))
		}
	}
	return sb.String()
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
