package main

import (
	"github.com/planningpoko/core/internal/app"
	"github.com/planningpoko/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
