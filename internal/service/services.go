package service

import (
	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/nutrition"
	"github.com/V7-Lippyy/nutripal/internal/store"
)

type Services struct {
	FoodLog    FoodLogService
	Profile    ProfileService
	RefreshJob SessionRefreshJob
}

func NewServices(entries store.EntryRepository, prefs store.PreferenceRepository, lookup nutrition.Client, refresher SessionRefresher, logger *logger.Logger) *Services {
	return &Services{
		FoodLog:    NewFoodLogService(entries, lookup, logger),
		Profile:    NewProfileService(prefs, logger),
		RefreshJob: NewSessionRefreshJob(refresher, logger),
	}
}
