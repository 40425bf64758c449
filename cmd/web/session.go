package main

import (
	"encoding/gob"
	"github.com/myrjola/dailytake/internal/models"
)

func init() {
	gob.Register(models.GameState{})
}

const (
	playerIDSessionKey  = "playerID"
	gameStateSessionKey = "gameState"
)
