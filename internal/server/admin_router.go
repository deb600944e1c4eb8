package server

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"

	"github.com/IgnacioLauriano/vive-salud/internal/auth"
	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/category"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
	"github.com/IgnacioLauriano/vive-salud/internal/infra/redis"
	"github.com/IgnacioLauriano/vive-salud/internal/middleware"
	"github.com/IgnacioLauriano/vive-salud/internal/repository/mysql"
	"github.com/IgnacioLauriano/vive-salud/internal/service"
)

// RegisterAdminRoutes wires the back-office API, normally served on its
// own port. Every route past login requires the admin role claim.
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)

	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	orderSvc := service.NewOrderService(orderRepo)

	tokenCache := auth.NewTokenCache(redisClient, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	app.Use(middleware.RequestLog())

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})

	// Admins log in with the same accounts; the role claim decides what
	// the token may do.
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

	adminAPI := api.Party("/", AuthRequired(&cfg.JWT, tokenCache), AdminRequired())

	// ---- categories ----

	adminAPI.Get("/categories", func(ctx iris.Context) {
		list, err := categorySvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "categories": list})
	})

	adminAPI.Post("/categories", func(ctx iris.Context) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := ctx.ReadJSON(&req); err != nil || req.Name == "" {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": "name is required"})
			return
		}
		c := &category.Category{Name: req.Name, Description: req.Description}
		if err := categorySvc.Create(ctx.Request().Context(), c); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "category": c})
	})

	adminAPI.Put("/categories/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		c := &category.Category{ID: id, Name: req.Name, Description: req.Description}
		if err := categorySvc.Update(ctx.Request().Context(), c); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "category": c})
	})

	adminAPI.Delete("/categories/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := categorySvc.Delete(ctx.Request().Context(), id); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true})
	})

	// ---- products ----

	type productReq struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		CategoryID  int64           `json:"category_id"`
		Price       decimal.Decimal `json:"price"`
		Quantity    int64           `json:"quantity"`
		Status      int             `json:"status"`
	}

	adminAPI.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "products": list})
	})

	adminAPI.Post("/products", func(ctx iris.Context) {
		var req productReq
		if err := ctx.ReadJSON(&req); err != nil || req.Name == "" {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": "name is required"})
			return
		}
		p := &product.Product{
			Name:        req.Name,
			Description: req.Description,
			CategoryID:  req.CategoryID,
			Price:       req.Price,
			Quantity:    req.Quantity,
			Status:      req.Status,
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "product": p})
	})

	adminAPI.Put("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req productReq
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			fail(ctx, err)
			return
		}
		p.Name = req.Name
		p.Description = req.Description
		p.CategoryID = req.CategoryID
		p.Price = req.Price
		p.Quantity = req.Quantity
		p.Status = req.Status
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "product": p})
	})

	adminAPI.Delete("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := productSvc.Delete(ctx.Request().Context(), id); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true})
	})

	// ---- customers ----

	adminAPI.Get("/customers", func(ctx iris.Context) {
		list, err := userSvc.ListCustomers(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "customers": list})
	})

	adminAPI.Put("/customers/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			FullName string `json:"full_name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		u, err := userSvc.UpdateCustomer(ctx.Request().Context(), id, req.FullName, req.Email, req.Phone)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "customer": u})
	})

	adminAPI.Delete("/customers/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := userSvc.DeleteCustomer(ctx.Request().Context(), id); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true})
	})

	// ---- orders ----

	adminAPI.Get("/orders", func(ctx iris.Context) {
		list, err := orderSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "orders": list})
	})

	adminAPI.Get("/orders/{id:int64}/lines", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		lines, err := orderSvc.ListLines(ctx.Request().Context(), id)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true, "lines": lines})
	})

	adminAPI.Put("/orders/{id:int64}/status", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			Status string `json:"status"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})
			return
		}
		if req.Status != order.StatusPaid && req.Status != order.StatusCancelled {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": "invalid status"})
			return
		}
		if err := orderSvc.AdminUpdateStatus(ctx.Request().Context(), id, req.Status); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"ok": true})
	})
}
