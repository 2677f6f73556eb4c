// Command mti1 is the CLI surface for the Mesh Tile Format v1 codec
// (spec.md §6): inspect, decode, and encode MTI1 tile files. It is an
// external collaborator of the mti1 package, not part of the codec
// core — flag parsing, file I/O, and text formatting live here.
package main

import (
	"fmt"
	"os"

	"github.com/KotobaMedia/mesh-data-tile/mti1"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	var err error
	switch args[0] {
	case "inspect":
		err = runInspect(args[1:])
	case "decode":
		err = runDecode(args[1:])
	case "encode":
		err = runEncode(args[1:])
	case "-h", "--help", "help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "error: %s: unknown subcommand %q\n", mti1.InvalidFieldValue, args[0])
		return 1
	}

	if err != nil {
		reportError(err)
		return 1
	}
	return 0
}

func reportError(err error) {
	var mErr *mti1.Error
	if asMTI1Error(err, &mErr) {
		fmt.Fprintf(os.Stderr, "error: %s: %s\n", mErr.Code, mErr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", mti1.InternalFailure, err)
}

func asMTI1Error(err error, target **mti1.Error) bool {
	for err != nil {
		if e, ok := err.(*mti1.Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func printUsage() {
	fmt.Println(`mti1 - Mesh Tile Format v1 codec

Usage:
  mti1 inspect <file>
  mti1 decode <file> [--output <path>]
  mti1 encode --output <file> [flags]

Run "mti1 <subcommand> --help" for subcommand-specific flags.`)
}
