// Print a summary of an mmtf file.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/mmtf/pkg/cmmn"
	"github.com/andrew-torda/mmtf/pkg/mmtf"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] file.mmtf")
	flag.PrintDefaults()
}

func main() {
	var het, std, seq bool
	flag.BoolVar(&het, "het", true, "read hetero atoms")
	flag.BoolVar(&std, "std", true, "read polymer atoms")
	flag.BoolVar(&seq, "seq", false, "print per-chain sequences")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(ExitUsageError)
	}

	opts := &mmtf.DecodeOpts{ReadStdAtoms: std, ReadHetAtoms: het}
	s, err := mmtf.Read(flag.Arg(0), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}

	fmt.Println(s.Name, ":", s.NModel(), "models,", s.NChain(), "chains,",
		s.NResidue(), "residues,", s.NAtom(), "atoms")
	for _, m := range s.Models {
		for _, c := range m.Chains {
			fmt.Printf("model %d chain %s: %d residues\n",
				m.Num, c.ID, len(c.Residues))
			if seq {
				fmt.Println("  ", c.Sequence())
			}
		}
	}
	os.Exit(ExitSuccess)
}
