package internal

import (
	"donosync/internal/controllers"
	"donosync/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/message", http.HandlerFunc(apiController.GetMessage))
	routers.Get("/celebration", http.HandlerFunc(apiController.GetCelebration))
	routers.Get("/status", http.HandlerFunc(apiController.GetStatus))
	return routers
}
