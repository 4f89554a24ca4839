package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/claralima1/Planner/studyservice"
)

func main() {
	if err := studyservice.Run(); err != nil {
		log.Error().Err(err).Msg("study-service exited with error")
		os.Exit(1)
	}
}
