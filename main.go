package main

import (
	"github.com/Nothile-Moyo-Git/storefront/cmd"
)

func main() {
	cmd.Start()
}
