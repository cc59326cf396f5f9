package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/tictactoe-history/internal/cli"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	root := cli.Root()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("tictactoe failed")
	}
}
