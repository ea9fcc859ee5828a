package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/cunningbot/internal/api"
	apiMiddleware "github.com/phrazzld/cunningbot/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	chatHandler := api.NewChatHandler(app.chatService)
	diceHandler := api.NewDiceHandler(app.roller)
	personaHandler := api.NewPersonaHandler(app.personaService)
	gameHandler := api.NewDailyGameHandler(app.dailyGameService)
	channelHandler := api.NewUpdateChannelHandler(app.notificationService)
	queueHandler := api.NewQueueHandler(app.queue)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/chat", chatHandler.Submit)
		r.Post("/roll", diceHandler.Roll)

		r.Get("/personas", personaHandler.List)
		r.Put("/personas/{guild_id}", personaHandler.Set)
		r.Delete("/personas/{guild_id}", personaHandler.Clear)

		r.Post("/daily-games", gameHandler.Register)
		r.Get("/daily-games/{guild_id}", gameHandler.List)
		r.Patch("/daily-games/{guild_id}/{name}", gameHandler.Update)
		r.Delete("/daily-games/{guild_id}/{name}", gameHandler.Unregister)
		r.Get("/daily-games/{guild_id}/{name}/preview", gameHandler.Preview)

		r.Post("/updates/channels", channelHandler.Register)
		r.Get("/updates/channels", channelHandler.List)
		r.Delete("/updates/channels/{channel_id}", channelHandler.Unregister)

		r.Get("/queue", queueHandler.Status)
		r.Get("/queue/tasks/{id}", queueHandler.Task)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
