package main

import "github.com/pfrederiksen/courtgrid/internal/cli"

func main() {
	cli.Execute()
}
