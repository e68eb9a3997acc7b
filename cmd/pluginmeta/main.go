package main

import (
	"os"

	"github.com/poratu/pluginmeta/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
