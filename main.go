package main

import "github.com/xll-gen/text2h/cmd"

// main is the entry point of the text2h CLI application.
func main() {
	cmd.Execute()
}
