package main

import (
	"github.com/jjtimmons/offtarget/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
