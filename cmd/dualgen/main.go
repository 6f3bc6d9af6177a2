package main

import (
	"os"

	"github.com/toyz/dualgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
