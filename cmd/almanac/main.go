package main

import "github.com/oshokin/almanac/cmd/almanac/cmd"

func main() {
	cmd.Execute()
}
