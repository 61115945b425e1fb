package main

import "github.com/plattolabs/stackforge/cmd"

func main() {
	cmd.Execute()
}
