package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shesaidimnothing/filrouge-api/internal/handlers"
	"github.com/shesaidimnothing/filrouge-api/internal/repository"
	"github.com/shesaidimnothing/filrouge-api/internal/services"
)

func RegisterRoutes(app *fiber.App, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	adRepo := repository.NewAdRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	adService := services.NewAdService(db, adRepo, responseRepo)
	messagingService := services.NewMessagingService(messageRepo, userRepo)

	userHandler := handlers.NewUserHandler(userRepo)
	adHandler := handlers.NewAdHandler(adRepo, responseRepo, adService)
	responseHandler := handlers.NewResponseHandler(responseRepo, adRepo, userRepo)
	messageHandler := handlers.NewMessageHandler(messagingService)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/login", userHandler.Login)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	ads := api.Group("/ads")
	ads.Get("/", adHandler.List)
	ads.Delete("/admin/delete-all", adHandler.DeleteAll)
	ads.Get("/user/:userId", adHandler.ListByUser)
	ads.Get("/:id", adHandler.Get)
	ads.Post("/", adHandler.Create)
	ads.Put("/:id", adHandler.Update)
	ads.Delete("/:id", adHandler.Delete)

	responses := api.Group("/responses")
	responses.Get("/ad/:adId", responseHandler.ListByAd)
	responses.Get("/user/:userId", responseHandler.ListByUser)
	responses.Get("/:id", responseHandler.Get)
	responses.Post("/", responseHandler.Create)
	responses.Delete("/:id", responseHandler.Delete)

	messages := api.Group("/messages")
	messages.Get("/user/:userId", messageHandler.ListUserMessages)
	messages.Get("/conversations/:userId", messageHandler.ListConversations)
	messages.Get("/conversation/:userId/:contactId", messageHandler.GetConversation)
	messages.Post("/", messageHandler.Send)
	messages.Put("/read/:id", messageHandler.MarkRead)
	messages.Put("/read-conversation/:userId/:contactId", messageHandler.MarkConversationRead)
}
