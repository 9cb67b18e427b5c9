package main

import "github.com/robalobadob/friendle/cmd"

func main() {
	cmd.Execute()
}
