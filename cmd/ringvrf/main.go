// Command ringvrf aggregates rings, signs and verifies ring VRF signatures from the command line.
package main

import "github.com/codahale/ringvrf/cmd/ringvrf/cmd"

func main() {
	cmd.Execute()
}
