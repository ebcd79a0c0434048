package main

import (
	"github.com/Cloud-Coop/cloudcoal/cmd"
)

// @title cloudcoal CLI
// @version 1.0
// @description start point for the CLI

func main() {
	cmd.Execute()
}
