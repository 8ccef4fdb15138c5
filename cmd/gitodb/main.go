package main

import "github.com/aweris/gitodb/cmd/gitodb/cmd"

func main() {
	cmd.Execute()
}
