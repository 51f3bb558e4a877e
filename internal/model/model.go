package model

import (
	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
	"github.com/LeonardoBeccarini/evap_project/internal/model/messages"
)

// Alias per esporre tipi comuni ai servizi

type (
	EnvState               = entities.EnvState
	DerivedQuantities      = entities.DerivedQuantities
	ChartSpec              = entities.ChartSpec
	ParamUpdateEvent       = messages.ParamUpdateEvent
	DerivedQuantitiesEvent = messages.DerivedQuantitiesEvent
)
