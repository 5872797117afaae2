// Command timetravelstore runs the time travel catalog service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NikMakPak/timetravelstore/pkg/timetravelstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := timetravelstore.Main(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
