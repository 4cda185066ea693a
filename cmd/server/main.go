// Command server starts the API server directly, without the CLI wrapper.
package main

import (
	"log"

	"github.com/epicurean/epicurean/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
