package trafficfsm

import (
	"fmt"
	"strings"
)

// InputVector is the sampled sensor word: bit0 east-west car, bit1
// north-south car, bit2 pedestrian.
type InputVector uint8

const (
	// EastWestCar is set when a vehicle waits on the east-west approach
	EastWestCar InputVector = 1 << iota
	// NorthSouthCar is set when a vehicle waits on the north-south approach
	NorthSouthCar
	// Pedestrian is set when the pedestrian sensor is active
	Pedestrian
)

// NumInputs is the size of the input alphabet
const NumInputs = 8

const inputMask InputVector = NumInputs - 1

// NewInputVector combines the three sensors into an input code
func NewInputVector(eastWest, northSouth, pedestrian bool) InputVector {
	var in InputVector
	if eastWest {
		in |= EastWestCar
	}
	if northSouth {
		in |= NorthSouthCar
	}
	if pedestrian {
		in |= Pedestrian
	}
	return in
}

// Mask drops everything above the three sensor bits
func (in InputVector) Mask() InputVector {
	return in & inputMask
}

// Has reports whether all bits of sensor are set
func (in InputVector) Has(sensor InputVector) bool {
	return in&sensor == sensor
}

func (in InputVector) String() string {
	in = in.Mask()
	if in == 0 {
		return "none"
	}
	parts := make([]string, 0, 3)
	if in.Has(EastWestCar) {
		parts = append(parts, "ew")
	}
	if in.Has(NorthSouthCar) {
		parts = append(parts, "ns")
	}
	if in.Has(Pedestrian) {
		parts = append(parts, "ped")
	}
	return strings.Join(parts, "+")
}

// Color is the aspect shown by one vehicle signal group
type Color int

const (
	// Dark means no lamp of the group is lit
	Dark Color = iota
	Red
	Yellow
	Green
	// Conflict means more than one lamp of the group is lit
	Conflict
)

func (c Color) String() string {
	switch c {
	case Dark:
		return "dark"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// LampPattern is the 6-bit vehicle lamp word. Bits 5..3 drive the east-west
// red, yellow and green lamps, bits 2..0 the north-south ones.
type LampPattern uint8

const (
	NorthSouthGreen LampPattern = 1 << iota
	NorthSouthYellow
	NorthSouthRed
	EastWestGreen
	EastWestYellow
	EastWestRed
)

// LampMask covers the six vehicle lamp bits
const LampMask LampPattern = 0x3F

// Lamps builds a pattern from the aspect of each group
func Lamps(eastWest, northSouth Color) LampPattern {
	return groupBits(eastWest)<<3 | groupBits(northSouth)
}

func groupBits(c Color) LampPattern {
	switch c {
	case Red:
		return 0x4
	case Yellow:
		return 0x2
	case Green:
		return 0x1
	default:
		return 0
	}
}

func groupColor(bits LampPattern) Color {
	switch bits & 0x7 {
	case 0:
		return Dark
	case 0x4:
		return Red
	case 0x2:
		return Yellow
	case 0x1:
		return Green
	default:
		return Conflict
	}
}

// EastWest decodes the east-west group aspect
func (p LampPattern) EastWest() Color {
	return groupColor(p >> 3)
}

// NorthSouth decodes the north-south group aspect
func (p LampPattern) NorthSouth() Color {
	return groupColor(p)
}

// AllRed reports whether both groups show red
func (p LampPattern) AllRed() bool {
	return p.EastWest() == Red && p.NorthSouth() == Red
}

// Conflicts returns a description of the first unsafe lamp combination, or
// the empty string when the pattern is safe.
func (p LampPattern) Conflicts() string {
	if p&^LampMask != 0 {
		return fmt.Sprintf("pattern 0x%02X drives bits outside the lamp mask", uint8(p))
	}
	ew, ns := p.EastWest(), p.NorthSouth()
	switch {
	case ew == Conflict:
		return "east-west group lights more than one lamp"
	case ns == Conflict:
		return "north-south group lights more than one lamp"
	case ew == Green && ns == Green:
		return "both groups green"
	}
	return ""
}

func (p LampPattern) String() string {
	return fmt.Sprintf("ew=%s ns=%s", p.EastWest(), p.NorthSouth())
}

// PedPattern is the 2-bit pedestrian lamp word
type PedPattern uint8

const (
	// DontWalk lights the don't-walk indicator
	DontWalk PedPattern = 1 << iota
	// Walk lights the walk indicator
	Walk
)

// PedMask covers the two pedestrian lamp bits
const PedMask PedPattern = 0x3

// Walk reports whether the walk indicator is lit
func (p PedPattern) Walk() bool {
	return p&Walk != 0
}

// DontWalk reports whether the don't-walk indicator is lit
func (p PedPattern) DontWalk() bool {
	return p&DontWalk != 0
}

func (p PedPattern) String() string {
	switch p & PedMask {
	case 0:
		return "off"
	case Walk:
		return "walk"
	case DontWalk:
		return "dont-walk"
	default:
		return "walk+dont-walk"
	}
}
