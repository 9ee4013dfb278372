package main

import (
	"github.com/Paintersrp/runfor/internal/cli"
)

func main() {
	cli.Execute()
}
