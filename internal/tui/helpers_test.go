package tui

import (
	"mini-weather/internal/config"
	"mini-weather/internal/game"
)

func newSmallSession() (*game.Session, error) {
	s := config.Default()
	s.World.NumLakes = 2
	s.World.NumTrees = 10
	return game.NewSession(s)
}
