package main

import (
	"os"

	"myplan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
