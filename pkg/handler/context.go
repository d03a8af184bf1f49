package handler

// DI for all handlers alike.

import (
	"github.com/yumyai/omixweb/pkg/model"
)

type AppContext struct {
	Resolver  model.Resolver
	Enricher  model.Enricher
	Libraries []model.Library
	Runs      *RunManager
}
