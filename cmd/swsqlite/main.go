package main

import (
	"context"
	"log"

	"github.com/VeldsparCrypto/SWSQLite/internal/cli"
)

func main() {
	if err := cli.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
