package main

import (
	"github.com/stxcorp/orders-ms/internal/app"
	"github.com/stxcorp/orders-ms/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
