package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorRop4/alx-project-nexus/middleware"
	"github.com/VictorRop4/alx-project-nexus/utils"
)

// SetupRoutes wires the HTTP surface. Reads are public; writes go through
// the JWT middleware and the per-resource role policy, with object-level
// ownership enforced inside the handlers.
func SetupRoutes(app *fiber.App, db *gorm.DB, mpesaClient StkPusher) {
	authHandler := NewAuthHandler(db)
	userHandler := NewUserHandler(db)
	categoryHandler := NewCategoryHandler(db)
	productHandler := NewProductHandler(db)
	cartHandler := NewCartHandler(db)
	orderHandler := NewOrderHandler(db, mpesaClient)
	reviewHandler := NewReviewHandler(db)
	checkoutHandler := NewCheckoutHandler(db, mpesaClient)
	paymentHandler := NewPaymentHandler(db, mpesaClient)
	callbackHandler := NewMpesaCallbackHandler(db)
	uploadHandler := NewUploadHandler()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success", "message": "API is healthy"})
	})

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", utils.AuthMiddleware, authHandler.Me)
	auth.Put("/me/profile", utils.AuthMiddleware, userHandler.UpdateProfile)

	// Users (admin)
	api.Get("/users", utils.AuthMiddleware,
		middleware.RequireRole(middleware.AdminOnly), userHandler.ListUsers)

	// Categories
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.GetCategories)
	categories.Get("/:id", categoryHandler.GetCategory)
	categoryWrite := middleware.RequireRole(middleware.CategoryPolicy)
	categories.Post("/", utils.AuthMiddleware, categoryWrite, categoryHandler.CreateCategory)
	categories.Put("/:id", utils.AuthMiddleware, categoryWrite, categoryHandler.UpdateCategory)
	categories.Delete("/:id", utils.AuthMiddleware, categoryWrite, categoryHandler.DeleteCategory)

	// Products
	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Get("/:id", productHandler.GetProduct)
	productWrite := middleware.RequireRole(middleware.ProductPolicy)
	products.Post("/", utils.AuthMiddleware, productWrite, productHandler.CreateProduct)
	products.Put("/:id", utils.AuthMiddleware, productWrite, productHandler.UpdateProduct)
	products.Delete("/:id", utils.AuthMiddleware, productWrite, productHandler.DeleteProduct)

	// Product image uploads
	api.Post("/uploads/products", utils.AuthMiddleware, productWrite, uploadHandler.UploadImage)

	// Cart
	cartWrite := middleware.RequireRole(middleware.CartPolicy)
	cart := api.Group("/cart", utils.AuthMiddleware, cartWrite)
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/items", cartHandler.AddCartItem)
	cart.Put("/items/:id", cartHandler.UpdateCartItem)
	cart.Delete("/items/:id", cartHandler.RemoveCartItem)
	cart.Delete("/", cartHandler.ClearCart)

	// Orders
	orderWrite := middleware.RequireRole(middleware.OrderPolicy)
	orders := api.Group("/orders", utils.AuthMiddleware)
	orders.Get("/", orderHandler.GetOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Delete("/:id", orderWrite, orderHandler.CancelOrder)
	orders.Post("/:id/confirm_payment", orderWrite, orderHandler.ConfirmPayment)
	orders.Post("/:id/mark_delivered", orderWrite, orderHandler.MarkDelivered)

	// Reviews
	reviews := api.Group("/reviews")
	reviews.Get("/", reviewHandler.GetReviews)
	reviews.Get("/:id", reviewHandler.GetReview)
	reviewWrite := middleware.RequireRole(middleware.ReviewPolicy)
	reviews.Post("/", utils.AuthMiddleware, reviewWrite, reviewHandler.CreateReview)
	reviews.Delete("/:id", utils.AuthMiddleware, reviewWrite, reviewHandler.DeleteReview)

	// Checkout
	api.Post("/checkout/", utils.AuthMiddleware,
		middleware.RequireRole(middleware.CheckoutPolicy), checkoutHandler.Checkout)

	// Payments
	payments := api.Group("/payments")
	payments.Get("/", utils.AuthMiddleware, paymentHandler.GetPayments)
	payments.Post("/mpesa/stkpush/", utils.AuthMiddleware,
		middleware.RequireRole(middleware.CheckoutPolicy), paymentHandler.StkPush)
	payments.Get("/:id", utils.AuthMiddleware, paymentHandler.GetPayment)

	// Safaricom posts here unauthenticated; the handler always acks.
	api.Post("/mpesa/callback/", callbackHandler.Callback)
}
