package server

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/IgnacioLauriano/vive-salud/internal/auth"
	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/checkout"
	"github.com/IgnacioLauriano/vive-salud/internal/infra/mq"
	"github.com/IgnacioLauriano/vive-salud/internal/infra/redis"
	"github.com/IgnacioLauriano/vive-salud/internal/middleware"
	"github.com/IgnacioLauriano/vive-salud/internal/repository/mysql"
	"github.com/IgnacioLauriano/vive-salud/internal/service"
)

// RegisterRoutes wires the storefront API.
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	checkoutStore := mysql.NewCheckoutStore(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	orderSvc := service.NewOrderService(orderRepo)
	checkoutSvc := service.NewCheckoutService(
		checkoutStore,
		orderRepo,
		mq.NewPublisher(mqConn),
		cfg.Checkout.LockWait,
	)

	tokenCache := auth.NewTokenCache(redisClient, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	app.Use(middleware.RequestLog())

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})

	api.Post("/register", func(ctx iris.Context) {
		var req struct {
			FullName string `json:"full_name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), req.FullName, req.Email, req.Phone, req.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "user": u})
	})

	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		token, err := userSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "token": token})
	})

	// Catalog browsing is public, as the storefront page is.
	api.Get("/products", func(ctx iris.Context) {
		categoryID := ctx.URLParamInt64Default("category_id", 0)
		keyword := ctx.URLParam("q")
		list, err := productSvc.ListOnline(ctx.Request().Context(), categoryID, keyword)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "products": list})
	})

	api.Get("/categories", func(ctx iris.Context) {
		list, err := categorySvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "categories": list})
	})

	authAPI := api.Party("/", AuthRequired(&cfg.JWT, tokenCache))

	checkoutBucket := middleware.NewTokenBucket(cfg.Checkout.RateCapacity, cfg.Checkout.RateRefill)

	// Checkout: the cart commits or nothing does.
	authAPI.Post("/orders", middleware.RateLimit(checkoutBucket), func(ctx iris.Context) {
		var req struct {
			Items           []checkout.CartItem `json:"items"`
			ShippingAddress string              `json:"shipping_address"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		receipt, err := checkoutSvc.SubmitOrder(ctx.Request().Context(), currentUserID(ctx), req.Items, req.ShippingAddress)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{
			"ok":       true,
			"order_id": receipt.OrderID,
			"total":    receipt.Total,
		})
	})

	// ?status=pending narrows the list, matching the storefront's
	// open-orders view.
	authAPI.Get("/orders", func(ctx iris.Context) {
		list, err := orderSvc.ListByUser(ctx.Request().Context(), currentUserID(ctx), ctx.URLParam("status"))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "orders": list})
	})

	authAPI.Get("/orders/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		detail, err := orderSvc.Get(ctx.Request().Context(), id, currentUserID(ctx))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "order": detail.Order, "lines": detail.Lines})
	})

	// Payment confirmation arrives as an external event; the handler is
	// idempotent by construction.
	authAPI.Post("/orders/{id:int64}/pay", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := checkoutSvc.MarkPaid(ctx.Request().Context(), id, currentUserID(ctx)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true})
	})
}
