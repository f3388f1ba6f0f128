package main

import "github.com/mateuszmigas/update-beacon/cmd/beacon-show/cmd"

func main() {
	cmd.Execute()
}
