package main

import (
	"context"
	"log"

	"github.com/BlackDragon0207/siro/internal/config"
	"github.com/BlackDragon0207/siro/internal/daemonrun"
)

func main() {
	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{}); err != nil {
		log.Fatalf("run daemon: %v", err)
	}
}
