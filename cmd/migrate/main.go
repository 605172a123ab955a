package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/helper"
	"bookit/shared/logger"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop, version or force <version>")
	}

	cfg := config.Get()

	if err := helper.Run(cfg, helper.Action(os.Args[1]), os.Args[argLength:]...); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
