package main

import (
	"log"

	"github.com/phanxgames/hexfolio/cmd/hexfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
