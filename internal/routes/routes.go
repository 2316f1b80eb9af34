package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/noora/internal/config"
	"github.com/example/noora/internal/handlers"
	"github.com/example/noora/internal/middleware"
	"github.com/example/noora/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	attributeService := services.NewAttributeService(db)
	specificationService := services.NewSpecificationService(db)
	variantService := services.NewVariantService(db)
	catalogService := services.NewCatalogService(db, attributeService, specificationService, variantService)
	homepageService := services.NewHomepageService(db, catalogService)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db, catalogService)
	attributeHandler := handlers.NewAttributeHandler(attributeService, specificationService)
	variantHandler := handlers.NewVariantHandler(variantService)
	homepageHandler := handlers.NewHomepageHandler(homepageService)
	profileHandler := handlers.NewProfileHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", middleware.AuthMiddleware(cfg), authHandler.Refresh)

	// Catalog routes
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/with-subcategories", catalogHandler.ListCategoriesWithSubcategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Get("/:id/subcategories", catalogHandler.ListSubcategories)

	// Products
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)

	// Attribute schema
	attributes := api.Group("/attributes")
	attributes.Get("/", attributeHandler.ListAttributes)
	attributes.Get("/:id/options", attributeHandler.ListOptions)

	// Variant groups
	variantGroups := api.Group("/variant-groups")
	variantGroups.Get("/", variantHandler.ListGroups)
	variantGroups.Get("/:id", variantHandler.GetGroup)

	// Homepage
	api.Get("/homepage", homepageHandler.GetHomePage)

	// Protected user routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Get("/profile/addresses", profileHandler.ListAddresses)
	protected.Post("/profile/addresses", profileHandler.CreateAddress)
	protected.Put("/profile/addresses/:id", profileHandler.UpdateAddress)
	protected.Delete("/profile/addresses/:id", profileHandler.DeleteAddress)

	// Admin write surface. Catalog writes require an authenticated caller.
	admin := api.Group("", middleware.AuthMiddleware(cfg))

	admin.Post("/categories", catalogHandler.CreateCategory)
	admin.Put("/categories/:id", catalogHandler.UpdateCategory)
	admin.Delete("/categories/:id", catalogHandler.DeleteCategory)
	admin.Post("/categories/:id/subcategories", catalogHandler.CreateSubcategory)
	admin.Put("/subcategories/:id", catalogHandler.UpdateSubcategory)
	admin.Delete("/subcategories/:id", catalogHandler.DeleteSubcategory)

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)
	admin.Put("/products/:id/specifications", attributeHandler.SetSpecifications)
	admin.Delete("/products/:id/specifications/:attribute_id", attributeHandler.DeleteSpecification)

	admin.Post("/attributes", attributeHandler.DefineAttribute)
	admin.Put("/attributes/:id", attributeHandler.UpdateAttribute)
	admin.Delete("/attributes/:id", attributeHandler.DeleteAttribute)
	admin.Post("/attributes/:id/options", attributeHandler.AddOption)
	admin.Delete("/attributes/:id/options/:option_id", attributeHandler.DeleteOption)

	admin.Post("/variant-groups", variantHandler.CreateGroup)
	admin.Put("/variant-groups/:id/default", variantHandler.SetDefault)
	admin.Delete("/variant-groups/:id", variantHandler.DeleteGroup)

	admin.Get("/home-sections", homepageHandler.ListSections)
	admin.Get("/home-sections/:id", homepageHandler.GetSection)
	admin.Post("/home-sections", homepageHandler.CreateSection)
	admin.Put("/home-sections/:id", homepageHandler.UpdateSection)
	admin.Delete("/home-sections/:id", homepageHandler.DeleteSection)
	admin.Put("/home-sections/:id/items", homepageHandler.ReplaceSectionItems)
}
