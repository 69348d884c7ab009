package codegen

import (
	"fmt"
	"io"

	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// Dump writes a human-readable assembly listing of s.
func Dump(w io.Writer, s *BinaryScript) error {
	if w == nil || s == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s.%s\n", s.Name, s.Extension); err != nil {
		return err
	}
	for _, st := range types.StackTypes {
		params, vars := len(s.Locals.Params[st]), len(s.Locals.Vars[st])
		if params+vars == 0 {
			continue
		}
		fmt.Fprintf(w, "  locals %s: params=%d vars=%d\n", st, params, vars)
	}
	if s.Arrays > 0 {
		fmt.Fprintf(w, "  arrays: %d\n", s.Arrays)
	}
	for _, t := range s.Switches {
		fmt.Fprintf(w, "  %s\n", t)
	}
	for _, b := range s.Blocks.Blocks() {
		fmt.Fprintf(w, "%s:\n", b.Label.Name)
		for _, in := range b.Instructions {
			if _, err := fmt.Fprintf(w, "    %s\n", in); err != nil {
				return err
			}
		}
	}
	return nil
}
