// Mmtfcopy decodes an mmtf file and writes it back out, so
//     mmtfcopy in.mmtf.gz out.mmtf
// is a decompressor and
//     mmtfcopy -z in.mmtf out.mmtf.gz
// a compressor. With -calpha only the alpha carbons survive, which
// makes usefully small files for fitting work.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/mmtf/pkg/cmmn"
	"github.com/andrew-torda/mmtf/pkg/mmtf"
	"github.com/andrew-torda/mmtf/pkg/structure"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] in.mmtf out.mmtf")
	flag.PrintDefaults()
}

func main() {
	var gz, calpha bool
	flag.BoolVar(&gz, "z", false, "gzip the output")
	flag.BoolVar(&calpha, "calpha", false, "keep only alpha carbons")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
		os.Exit(ExitUsageError)
	}

	s, err := mmtf.Read(flag.Arg(0), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reading", flag.Arg(0), err)
		os.Exit(ExitFailure)
	}
	var sels []structure.Selector
	if calpha {
		sels = append(sels, structure.CalphaSel)
	}
	if err := mmtf.Write(flag.Arg(1), s, gz, sels...); err != nil {
		fmt.Fprintln(os.Stderr, "writing", flag.Arg(1), err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
