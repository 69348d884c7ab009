package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/waleedyaseen/RuneScript-sub000/internal/codegen"
	"github.com/waleedyaseen/RuneScript-sub000/internal/types"
)

// ListingHeader is the signature line printed above a script listing.
type ListingHeader struct {
	Name    string
	ID      int32
	Params  []string
	Returns []string
}

// HeaderOf reads the header from a freshly generated script.
func HeaderOf(s *codegen.BinaryScript) ListingHeader {
	h := ListingHeader{Name: s.Name, ID: s.Info.ID}
	for _, p := range s.Info.Params {
		h.Params = append(h.Params, p.String())
	}
	if s.Info.Returns != nil {
		for _, r := range types.Flatten(s.Info.Returns) {
			h.Returns = append(h.Returns, r.String())
		}
	}
	return h
}

func (h ListingHeader) String() string {
	var sb strings.Builder
	sb.WriteString(h.Name)
	sb.WriteString("(")
	sb.WriteString(strings.Join(h.Params, ", "))
	sb.WriteString(")")
	if len(h.Returns) > 0 {
		sb.WriteString("(")
		sb.WriteString(strings.Join(h.Returns, ", "))
		sb.WriteString(")")
	}
	if h.ID >= 0 {
		fmt.Fprintf(&sb, " id=%d", h.ID)
	}
	return sb.String()
}

// FormatListing prints "; <signature>" followed by the assembly listing.
func FormatListing(w io.Writer, h ListingHeader, s *codegen.BinaryScript) error {
	if _, err := fmt.Fprintf(w, "; %s\n", h); err != nil {
		return err
	}
	return codegen.Dump(w, s)
}
