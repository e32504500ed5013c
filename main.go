////////////////////////////////////////////////////////////////////////////////
// Dominion DAO: a treasury, governance and NFT marketplace ledger node
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dominion_dao/internal/config"
	"dominion_dao/internal/node"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DAO] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := node.Run(ctx, cfg, log.Default()); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
