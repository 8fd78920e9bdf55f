// Package appliance models the air-conditioner operating states.
//
// The state value itself is owned by the supervisor's command executor:
// nothing else mutates it, and it only changes after a command succeeds.
package appliance

// State is one of the fixed operating states of the appliance.
type State uint8

const (
	Off State = iota
	On
	Temp20
	Temp22
	Fan1
	Fan2

	numStates
)

// Invalid is a sentinel outside the cyclic domain. It is used as the
// "nothing rendered yet" marker so the first display pass always draws.
const Invalid = numStates

// Count is the size of the cyclic state domain.
const Count = int(numStates)

// Valid reports whether s is inside the cyclic domain.
func (s State) Valid() bool { return s < numStates }

// Next advances one step around the cycle: Off→On→Temp20→Temp22→Fan1→Fan2→Off.
func (s State) Next() State { return (s + 1) % numStates }

// PowerOn reports whether the onboard power indicator should be lit for s.
func (s State) PowerOn() bool { return s != Off }

func (s State) String() string {
	switch s {
	case Off:
		return "OFF"
	case On:
		return "ON"
	case Temp20:
		return "TEMP 20C"
	case Temp22:
		return "TEMP 22C"
	case Fan1:
		return "FAN 1"
	case Fan2:
		return "FAN 2"
	default:
		return "UNKNOWN"
	}
}

// ParseToken maps a serial menu digit to a target state.
// '0' (menu) and unrecognised bytes yield ok=false.
func ParseToken(b byte) (State, bool) {
	switch b {
	case '1':
		return On, true
	case '2':
		return Off, true
	case '3':
		return Temp22, true // induces the temperature fault downstream
	case '4':
		return Temp20, true
	case '5':
		return Fan1, true
	case '6':
		return Fan2, true
	default:
		return Invalid, false
	}
}

// Menu is the serial help text printed for token '0' and at boot.
const Menu = "=== IR + WATCHDOG MENU ===\r\n" +
	"1-On  2-Off\r\n" +
	"3-22C(FAULT!)  4-20C\r\n" +
	"5-Fan1  6-Fan2\r\n" +
	"0-Menu\r\n"
