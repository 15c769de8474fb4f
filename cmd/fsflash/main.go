package main

import (
	"github.com/tacogips/fsflash/internal/cli"
)

func main() {
	cli.Execute()
}
