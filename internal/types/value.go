package types

import "strconv"

// Value is a compile-time constant on one stack channel.
type Value struct {
	Stack StackType
	Int   int32
	Str   string
	Long  int64
}

func IntValue(v int32) Value     { return Value{Stack: StackInt, Int: v} }
func StringValue(v string) Value { return Value{Stack: StackString, Str: v} }
func LongValue(v int64) Value    { return Value{Stack: StackLong, Long: v} }

func (v Value) String() string {
	switch v.Stack {
	case StackInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case StackString:
		return strconv.Quote(v.Str)
	case StackLong:
		return strconv.FormatInt(v.Long, 10) + "L"
	}
	return "<none>"
}
