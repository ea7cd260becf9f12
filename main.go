// Package main is the entry point for the pkgsync CLI application.
//
// pkgsync reads a list of name@version definitions, compares it with the
// packages already installed and installs whatever is missing or outdated.
package main

import "github.com/ajxudir/pkgsync/cmd"

func main() {
	cmd.Execute()
}
