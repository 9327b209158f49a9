package main

import (
	"github.com/joho/godotenv"

	"github.com/evanhutnik/castcheck-service/internal/castcheck"
)

func main() {
	_ = godotenv.Load()

	s := castcheck.New()
	s.Start()
}
