package main

import (
	"os"
	"slices"

	"rentdesk/config"
	"rentdesk/helper"
	"rentdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

var actions = []string{helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp}

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if len(os.Args) < 2 || !slices.Contains(actions, os.Args[1]) {
		log.Fatal().Strs("actions", actions).Msg("usage: migrate <action>")
	}

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Database migration failed")
	}
}
