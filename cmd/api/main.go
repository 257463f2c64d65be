package main

import (
	"context"
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// .env はあれば読む（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductVariant{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.ContactMessage{},
		&model.Achievement{},
		&model.StockAdjustment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	variantRepo := infraRepo.NewVariantGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	contactRepo := infraRepo.NewContactGormRepository(gormDB)
	achievementRepo := infraRepo.NewAchievementGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//S3（バケット未設定ならアップロードAPIは503）
	var evidence usecase.EvidenceStore
	if cfg.EvidenceBucket != "" {
		s3Store, err := storage.NewS3EvidenceStore(context.Background(), cfg.EvidenceBucket)
		if err != nil {
			log.Fatal(err)
		}
		evidence = s3Store
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, variantRepo, inventoryRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo, variantRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, evidence, cfg.StrictOrderFlow)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	contactUC := usecase.NewContactUsecase(contactRepo)
	achievementUC := usecase.NewAchievementUsecase(achievementRepo)

	//Handler生成
	handlers := server.Handlers{
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Contact:      handler.NewContactHandler(contactUC),
		Achievement:  handler.NewAchievementHandler(achievementUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		log.Fatal(err)
	}
}
