package keys

import "fmt"

// KeyValue is the state transition carried by a KeyEvent. The numeric values
// match the Linux input-event values.
type KeyValue uint8

const (
	Release KeyValue = 0
	Press   KeyValue = 1
	Repeat  KeyValue = 2
)

func (v KeyValue) String() string {
	switch v {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("KeyValue(%d)", uint8(v))
	}
}

// KeyEvent is the unit handed from capture to the remapper and from the
// remapper back to the output path.
type KeyEvent struct {
	Code  OsCode
	Value KeyValue
}

func (e KeyEvent) String() string {
	return e.Code.String() + " " + e.Value.String()
}
