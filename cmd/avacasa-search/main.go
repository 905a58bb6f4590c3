package main

import (
	"avacasa/internal"
	"flag"
	"log"
)

func main() {
	flag.Parse()

	application, err := internal.NewSearchApp(flag.Args())
	if err != nil {
		log.Fatalf("Failed to initialize search page: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Search page failed: %v", err)
	}
}
