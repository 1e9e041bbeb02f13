package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tabemap/cmd/fx/accountfx"
	"tabemap/cmd/fx/controllersfx"
	"tabemap/cmd/fx/dbfx"
	"tabemap/cmd/fx/placesfx"
	"tabemap/cmd/fx/shopfx"
	"tabemap/cmd/fx/storagefx"
	"tabemap/cmd/fx/tagsfx"
	"tabemap/internal/api/controllers"
	"tabemap/internal/infra"
	"tabemap/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	app := fx.New(
		fx.Invoke(infra.RunMigrations),

		dbfx.Module,
		accountfx.Module,
		tagsfx.Module,
		placesfx.Module,
		storagefx.Module,
		shopfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	shopsController *controllers.ShopsController,
	placesController *controllers.PlacesController,
	tagsController *controllers.TagController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, shopsController, placesController, tagsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	shopsController *controllers.ShopsController,
	placesController *controllers.PlacesController,
	tagsController *controllers.TagController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	shops := r.Group("/shops")
	shops.Use(middleware.JWTAuthMiddleware())
	shops.POST("", shopsController.RegisterShop)
	shops.GET("", shopsController.ListShops)
	shops.GET("/favorites", shopsController.ListFavorites)
	shops.GET("/:id", shopsController.GetShop)
	shops.PUT("/:id", shopsController.UpdateShop)
	shops.PATCH("/:id/status", shopsController.UpdateStatus)
	shops.DELETE("/:id", shopsController.DeleteShop)

	places := r.Group("/places")
	places.Use(middleware.JWTAuthMiddleware())
	places.GET("/autocomplete", placesController.Autocomplete)
	places.GET("/details", placesController.Details)

	r.GET("/map/shops", middleware.JWTAuthMiddleware(), shopsController.MapShops)

	tags := r.Group("/tags")
	tags.Use(middleware.JWTAuthMiddleware())
	tags.GET("", tagsController.ListAllTagsHandler)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "public/uploads"
	}
	r.Static("/uploads", uploadDir)
}
