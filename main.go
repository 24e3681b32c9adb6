package main

import "github.com/scicomp-go/cfem/cmd"

func main() {
	cmd.Execute()
}
