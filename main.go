package main

import "github.com/lepinkainen/reelbot/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
