package main

import (
	"fmt"
	"os"

	"github.com/erraggy/declgen"
	"github.com/erraggy/declgen/cmd/declgen/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("declgen %s\n", declgen.Version())
		return
	case "buildinfo":
		fmt.Println(declgen.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		err = commands.HandleGenerate(os.Args[2:])
	case "prune":
		err = commands.HandlePrune(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`declgen - TypeScript declaration generator for Highcharts doc trees

Usage:
  declgen <command> [flags]

Commands:
  generate    Generate declaration files for every configured product
  prune       List the undeclared type references of a namespace
  mcp         Serve the tools over the Model Context Protocol (stdio)
  version     Print the version
  buildinfo   Print version, commit and build date
  help        Show this help

Run 'declgen <command> --help' for command flags.
`)
}
