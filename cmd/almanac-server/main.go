package main

import "github.com/oshokin/almanac/cmd/almanac-server/cmd"

func main() {
	cmd.Execute()
}
