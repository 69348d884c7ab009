package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diagfmt"
	"github.com/waleedyaseen/RuneScript-sub000/internal/driver"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm object...",
	Short: "Print the listing of compiled script objects",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, path := range args {
		o, err := readObject(path)
		if err != nil {
			return err
		}
		s, err := o.BinaryScript()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := diagfmt.FormatListing(out, objectHeader(o), s); err != nil {
			return err
		}
	}
	return nil
}

func readObject(path string) (*driver.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	o, err := driver.DecodeObject(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

func objectHeader(o *driver.Object) diagfmt.ListingHeader {
	return diagfmt.ListingHeader{Name: o.Name, ID: o.ID, Params: o.Params, Returns: o.Returns}
}
