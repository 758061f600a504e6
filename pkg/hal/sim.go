package hal

import (
	"fmt"
	"io"
	"sync"

	"github.com/anggasct/trafficfsm"
)

// ScriptedSensors replays a fixed input script, one entry per Sample. Once
// the script is exhausted it keeps returning the fallback input.
type ScriptedSensors struct {
	mutex    sync.Mutex
	script   []trafficfsm.InputVector
	next     int
	fallback trafficfsm.InputVector
	samples  int
}

// NewScriptedSensors creates sensors that replay script
func NewScriptedSensors(script ...trafficfsm.InputVector) *ScriptedSensors {
	return &ScriptedSensors{script: script}
}

// Sample returns the next scripted input
func (s *ScriptedSensors) Sample() trafficfsm.InputVector {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.samples++
	if s.next < len(s.script) {
		in := s.script[s.next]
		s.next++
		return in
	}
	return s.fallback
}

// Set replaces the input returned after the script ends
func (s *ScriptedSensors) Set(in trafficfsm.InputVector) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.fallback = in
}

// Append queues more scripted inputs
func (s *ScriptedSensors) Append(script ...trafficfsm.InputVector) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.script = append(s.script, script...)
}

// Samples returns how many times Sample was called
func (s *ScriptedSensors) Samples() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.samples
}

// Emission is one recorded lamp write
type Emission struct {
	Main trafficfsm.LampPattern
	Ped  trafficfsm.PedPattern
}

// RecordingLamps keeps every emission in order
type RecordingLamps struct {
	mutex     sync.Mutex
	emissions []Emission
}

// Emit records the outputs
func (l *RecordingLamps) Emit(main trafficfsm.LampPattern, ped trafficfsm.PedPattern) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.emissions = append(l.emissions, Emission{Main: main, Ped: ped})
}

// Emissions returns a copy of the recorded writes
func (l *RecordingLamps) Emissions() []Emission {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	out := make([]Emission, len(l.emissions))
	copy(out, l.emissions)
	return out
}

// Last returns the most recent emission and whether there was one
func (l *RecordingLamps) Last() (Emission, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if len(l.emissions) == 0 {
		return Emission{}, false
	}
	return l.emissions[len(l.emissions)-1], true
}

// ConsoleLamps renders every emission as one text line
type ConsoleLamps struct {
	Out io.Writer
}

// Emit writes the lamp line
func (l *ConsoleLamps) Emit(main trafficfsm.LampPattern, ped trafficfsm.PedPattern) {
	fmt.Fprintln(l.Out, RenderLamps(main, ped))
}

// RenderLamps draws both groups and the pedestrian head, e.g.
// "EW [R . .]  NS [. . G]  PED [DONT WALK]"
func RenderLamps(main trafficfsm.LampPattern, ped trafficfsm.PedPattern) string {
	return fmt.Sprintf("EW %s  NS %s  PED %s", renderGroup(main.EastWest()), renderGroup(main.NorthSouth()), renderPed(ped))
}

func renderGroup(c trafficfsm.Color) string {
	switch c {
	case trafficfsm.Red:
		return "[R . .]"
	case trafficfsm.Yellow:
		return "[. Y .]"
	case trafficfsm.Green:
		return "[. . G]"
	case trafficfsm.Dark:
		return "[. . .]"
	default:
		return "[! ! !]"
	}
}

func renderPed(p trafficfsm.PedPattern) string {
	switch {
	case p.Walk() && p.DontWalk():
		return "[!!!!!!!!!]"
	case p.Walk():
		return "[WALK     ]"
	case p.DontWalk():
		return "[DONT WALK]"
	default:
		return "[         ]"
	}
}
