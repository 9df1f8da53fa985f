package main

import (
	"os"

	"github.com/toyz/reflector/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
