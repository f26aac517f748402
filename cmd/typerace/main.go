package main

import (
	"github.com/fwhittle/typerace-go/internal/cli"
)

func main() {
	cli.Execute()
}
