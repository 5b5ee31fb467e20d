package main

import "teach-sync/cmd"

func main() {
	cmd.Execute()
}
