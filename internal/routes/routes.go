package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/example/stylehub/internal/catalog"
	"github.com/example/stylehub/internal/config"
	"github.com/example/stylehub/internal/handlers"
	"github.com/example/stylehub/internal/middleware"
	"github.com/example/stylehub/internal/models"
	"github.com/example/stylehub/internal/services"
)

// Deps are the shared components the route table is built from.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Metrics   *middleware.Metrics
	Limiter   fiber.Storage
	Notifier  handlers.OrderNotifier
	AccessLog bool
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Deps) {
	db := deps.DB
	engine := catalog.NewEngine(db)

	notifier := deps.Notifier
	if notifier == nil && deps.Config != nil && deps.Config.TelegramEnabled() {
		notifier = services.NewTelegramService(deps.Config.TelegramBotToken, deps.Config.TelegramAdminChat)
	}

	productHandler := handlers.NewProductHandler(db, engine)
	brandHandler := handlers.NewBrandHandler(db, engine)
	reviewHandler := handlers.NewReviewHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db, notifier)
	wishlistHandler := handlers.NewWishlistHandler(db)
	activityHandler := handlers.NewActivityHandler(db)
	systemHandler := handlers.NewSystemHandler(db)

	app.Use(cors.New())
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Handler())
		app.Get("/metrics", deps.Metrics.Endpoint())
	}

	rateLimit := middleware.RateLimitConfig{Storage: deps.Limiter}
	if deps.Config != nil {
		rateLimit.Max = deps.Config.RateLimitMax
		rateLimit.Window = deps.Config.RateLimitWindow
	}

	app.Get("/health", systemHandler.Health)

	api := app.Group("/api", middleware.RateLimit(rateLimit))
	api.Post("/init-data", systemHandler.InitData)

	// Products: fixed paths first so they are not captured by /:id.
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/men", productHandler.ListGroup(models.GroupMen))
	products.Get("/women", productHandler.ListGroup(models.GroupWomen))
	products.Get("/sale", productHandler.ListSale)
	products.Post("/search", productHandler.Search)
	products.Get("/suggestions", productHandler.Suggestions)
	products.Get("/trending", productHandler.Trending)
	products.Get("/recommended/:session_id", productHandler.Recommended)
	products.Get("/recently-viewed/:session_id", productHandler.RecentlyViewed)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)
	products.Post("/:id/track-activity", activityHandler.Track)
	products.Get("/:id/reviews", reviewHandler.ListReviews)
	products.Post("/:id/reviews", reviewHandler.CreateReview)

	api.Put("/reviews/:id/helpful", reviewHandler.MarkHelpful)

	brands := api.Group("/brands")
	brands.Get("/", brandHandler.ListBrands)
	brands.Post("/", brandHandler.CreateBrand)
	brands.Get("/:id", brandHandler.GetBrand)
	brands.Put("/:id", brandHandler.UpdateBrand)
	brands.Delete("/:id", brandHandler.DeleteBrand)
	brands.Get("/:id/products", brandHandler.ListBrandProducts)

	cart := api.Group("/cart")
	cart.Post("/", cartHandler.AddToCart)
	cart.Delete("/session/:session_id", cartHandler.ClearCart)
	cart.Get("/:session_id", cartHandler.GetCart)
	cart.Put("/:item_id", cartHandler.UpdateCartItem)
	cart.Delete("/:item_id", cartHandler.RemoveCartItem)

	api.Post("/orders", orderHandler.CreateOrder)
	api.Get("/orders/:session_id", orderHandler.ListOrders)

	wishlist := api.Group("/wishlist")
	wishlist.Post("/", wishlistHandler.AddToWishlist)
	wishlist.Get("/:session_id", wishlistHandler.GetWishlist)
	wishlist.Delete("/:session_id/:product_id", wishlistHandler.RemoveFromWishlist)
}

// NewApp builds the fiber application with the shared error handler and the route table.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "StyleHub API",
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	Register(app, deps)
	return app
}
