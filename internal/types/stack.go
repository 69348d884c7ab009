package types

// StackType is one of the operand stack channels of the target VM.
type StackType uint8

const (
	StackNone StackType = iota
	StackInt
	StackString
	StackLong
)

// StackTypes lists the stack channels in the fixed int, string, long order.
var StackTypes = [...]StackType{StackInt, StackString, StackLong}

func (s StackType) String() string {
	switch s {
	case StackInt:
		return "int"
	case StackString:
		return "string"
	case StackLong:
		return "long"
	}
	return "none"
}
