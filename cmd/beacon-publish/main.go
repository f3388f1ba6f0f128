package main

import "github.com/mateuszmigas/update-beacon/cmd/beacon-publish/cmd"

func main() {
	cmd.Execute()
}
