package main

import "github.com/itsmostafa/godoxy/cmd"

func main() {
	cmd.Execute()
}
