package main

import "sousnote/cmd"

func main() {
	cmd.Execute()
}
