// Package types models the value types of the script language.
//
// Type is a closed sum over three shapes:
//
//   - Primitive: a leaf type (int, string, obj, coord, ...) with fixed flags and
//     a StackType channel;
//   - *Tuple: an ordered list of components, used for multi-value returns and
//     argument lists. NewTuple flattens on construction, so a tuple never holds
//     another tuple directly;
//   - ArrayReference: an array of a primitive component in a declaration-order
//     slot.
//
// Equality is structural and goes through Flatten, so VOID and an empty tuple
// compare equal.
package types
