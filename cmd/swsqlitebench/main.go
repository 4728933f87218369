package main

import (
	"context"
	"log"

	"github.com/VeldsparCrypto/SWSQLite/internal/bench"
)

func main() {
	if err := bench.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
