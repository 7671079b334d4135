package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute runs one command and maps its outcome to a process exit status.
func execute(args []string, out io.Writer) int {
	a := newApp(out)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)

	err := root.Execute()
	if err != nil {
		a.log.Error().Err(err).Msg("run failed")
	}
	return exitCode(err)
}
