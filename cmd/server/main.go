package main

import (
	"github.com/rs/zerolog/log"

	"reward_wheel/internal/app"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
