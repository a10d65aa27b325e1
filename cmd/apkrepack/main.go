package main

import (
	"os"

	"github.com/Ning0612/apkrepack/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
