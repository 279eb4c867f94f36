// meshtool is a CLI utility for inspecting meshes and baking their
// wireframes into geometry.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args, stdout)
	case "edges":
		err = cmdEdges(args, stdout)
	case "export":
		err = cmdExport(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "Usage: meshtool %s\n", string(ue))
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// usageError carries the usage line of a subcommand.
type usageError string

func (e usageError) Error() string { return "usage: meshtool " + string(e) }

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshtool - triangle mesh and wireframe utility

Usage:
  meshtool <command> [options]

Commands:
  info <model>                          Show counts, bounds and edge statistics
  edges <model> [-mode] [-degenerate] [-n N]
                                        Print edge instance transforms
  export <model> <out.stl> [-radius r] [-segments n] [-mode] [-degenerate] [-surface]
                                        Bake the wireframe into cylinders and write binary STL

Examples:
  meshtool info bunny.obj
  meshtool edges cube.stl -mode unique -n 5
  meshtool export bunny.obj bunny_wire.stl -radius 0.005 -segments 12`)
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
