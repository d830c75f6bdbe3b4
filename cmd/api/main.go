package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/abdullah107189/Employee-Management-server-side/internal/config"
	"github.com/abdullah107189/Employee-Management-server-side/internal/database"
	"github.com/abdullah107189/Employee-Management-server-side/internal/handlers"
	"github.com/abdullah107189/Employee-Management-server-side/internal/middleware"
	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/repositories"
	"github.com/abdullah107189/Employee-Management-server-side/internal/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация подключения к базе данных
	client, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Ошибка отключения от базы данных: %v", err)
		}
	}()

	db := client.Database(cfg.Database.Name)

	// Подключение к Redis (опционально: без него работаем без отзыва токенов)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Ошибка подключения к Redis: %v", err)
		}
	} else {
		log.Println("REDIS_ADDR не задан, отзыв токенов отключен")
	}

	// Создание репозиториев
	userRepo := repositories.NewUserRepository(db.Collection(repositories.CollectionUsers))
	workSheetRepo := repositories.NewWorkSheetRepository(db.Collection(repositories.CollectionWorkSheets))
	paymentRepo := repositories.NewPaymentRepository(db.Collection(repositories.CollectionPayments))

	// Создание сервисов
	authService := services.NewAuthService(cfg.JWT.Secret, rdb)
	userService := services.NewUserService(userRepo)
	workSheetService := services.NewWorkSheetService(workSheetRepo)
	paymentService := services.NewPaymentService(paymentRepo)

	// Создание обработчиков
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	appHandler := handlers.NewAppHandler(userService, workSheetService, paymentService)

	// Настройка маршрутизатора Gin
	router := gin.Default()

	// Настройка CORS: cookie-сессия требует credentials и явного origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Публичные маршруты
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Hello World!")
	})
	router.POST("/jwt-sign", authHandler.SignJWT)
	router.POST("/jwt-logout", authHandler.Logout)
	// Регистрация и проверка уволенной учетной записи происходят до выпуска токена
	router.POST("/setUser", appHandler.SetUser)
	router.GET("/allUser", appHandler.GetAllUsers)

	// Защищенные маршруты
	authorized := router.Group("/")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret, rdb))
	{
		authorized.GET("/checkRole/:email", appHandler.CheckRole)
		authorized.GET("/details/:id", appHandler.GetDetails)
		authorized.GET("/payment/history/:email", appHandler.GetPaymentHistory)

		// Маршруты сотрудника
		employee := authorized.Group("/")
		employee.Use(middleware.RequireRole(userService, models.RoleEmployee))
		{
			employee.POST("/work-sheet", appHandler.CreateWorkSheet)
			employee.GET("/work-sheet/:email", appHandler.GetWorkSheetsByEmail)
			employee.PATCH("/work-sheet/update/:id", appHandler.UpdateWorkSheet)
			employee.DELETE("/work-sheet/:id", appHandler.DeleteWorkSheet)
		}

		// Маршруты HR
		hr := authorized.Group("/")
		hr.Use(middleware.RequireRole(userService, models.RoleHR))
		{
			hr.GET("/work-sheet", appHandler.GetAllWorkSheets)
			hr.GET("/onlyEmployee", appHandler.GetOnlyEmployees)
			hr.PATCH("/verifyChange/:id", appHandler.ToggleVerification)
			hr.GET("/progress", appHandler.GetProgress)
			hr.POST("/payRequest", appHandler.CreatePayRequest)
		}

		// Маршруты администратора
		admin := authorized.Group("/")
		admin.Use(middleware.RequireRole(userService, models.RoleAdmin))
		{
			admin.GET("/payRequest", appHandler.GetPayRequests)
			admin.PATCH("/payment-update/:id", appHandler.SettlePayment)
			admin.PATCH("/fire/:email", appHandler.FireUser)
			admin.PATCH("/change/role/:email", appHandler.ChangeRole)
			admin.PATCH("/user/update/:id", appHandler.UpdateSalary)
		}
	}

	// Запуск сервера
	log.Printf("Сервер запускается на порту %s", cfg.Server.Port)
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
