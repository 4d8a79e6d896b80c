package main

import "github.com/txmux/tx/cmd"

func main() {
	cmd.Execute()
}
