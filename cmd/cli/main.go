package main

import "github.com/flamegraph-analysis/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
