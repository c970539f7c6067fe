package main

import "github.com/luthersystems/lcalc/cmd"

func main() {
	cmd.Execute()
}
