package handlers

import (
	"cantrack/internal/config"
	"cantrack/internal/repos"
	"cantrack/internal/services"
	"cantrack/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	DrinkHandler   *DrinkHandler
	ChartHandler   *ChartHandler
	LibraryHandler *LibraryHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, store services.ObjectStore) *Deps {
	drinkRepo := repos.NewDrinkRepo(db)
	imageRepo := repos.NewCanImageRepo(db)
	cache := storage.NewLocalCache(cfg.ImageCacheFile)

	drinkSvc := services.NewDrinkService(drinkRepo)
	imageSvc := services.NewImageService(store, imageRepo, cache, storage.HeadProber{})
	librarySvc := services.NewLibraryService(drinkRepo, imageSvc)

	return &Deps{
		DrinkHandler:   &DrinkHandler{Drinks: drinkSvc},
		ChartHandler:   &ChartHandler{Drinks: drinkSvc},
		LibraryHandler: &LibraryHandler{Cans: librarySvc, Images: imageSvc},
	}
}
