package internal

import (
	"net/http"
	"net/url"
	"shiftplan/internal/controllers"
	"shiftplan/internal/providers"
	"shiftplan/internal/structures"
)

func InitRoutes(
	apiController *controllers.ApiController,
	remoteController *controllers.RemoteController,
	shareController *controllers.ShareController,
	conf *structures.Config,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/snapshots", http.HandlerFunc(apiController.GetSnapshot))
	routers.Post("/api/snapshots", http.HandlerFunc(apiController.SaveSnapshot))
	routers.Delete("/api/snapshots", http.HandlerFunc(apiController.DeleteSnapshot))
	routers.Get("/api/hours", http.HandlerFunc(apiController.GetHours))
	routers.Get("/api/coverage", http.HandlerFunc(apiController.GetCoverage))

	routers.Get("/api/storage", http.HandlerFunc(apiController.GetStorageInfo))
	routers.Get("/api/storage/export", http.HandlerFunc(apiController.ExportStorage))
	routers.Post("/api/storage/clear", http.HandlerFunc(apiController.ClearStorage))

	routers.Get("/api/schedule", http.HandlerFunc(remoteController.Load))
	routers.Post("/api/schedule", http.HandlerFunc(remoteController.Save))
	routers.Delete("/api/schedule", http.HandlerFunc(remoteController.Delete))

	routers.Get(viewRoute(conf), http.HandlerFunc(shareController.View))
	return routers
}

// viewRoute is the path part of the configured share base URL.
func viewRoute(conf *structures.Config) string {
	u, err := url.Parse(conf.Share.BaseURL)
	if err != nil || u.Path == "" {
		return "/view"
	}
	return u.Path
}
