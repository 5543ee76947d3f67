package main

import (
	"io"
	"os"

	"github.com/vbonduro/shoplist/internal/display"
)

func main() {
	os.Exit(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !reported(err) {
			display.PrintError(stderr, "error: "+err.Error())
		}
		return 1
	}
	return 0
}
