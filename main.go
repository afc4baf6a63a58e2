// The main package for the tumblr-archiver executable.
package main

import (
	"github.com/AnnikaCodes/tumblr-archiver/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
