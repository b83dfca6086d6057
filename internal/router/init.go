package router

import (
	"github.com/listinker/listinker-api/internal/application"
	"github.com/listinker/listinker-api/internal/container"
	"github.com/listinker/listinker-api/internal/infrastructure/mongodb"
	handlers "github.com/listinker/listinker-api/internal/interface/http"
	"github.com/listinker/listinker-api/internal/router/modules"
)

// InitModules builds every repository, service, and handler from the
// container singletons and registers the feature modules. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	db := container.GetMongo()
	logger := container.GetLogger()

	users := mongodb.NewUserRepository(db)
	ads := mongodb.NewAdRepository(db)
	credits := mongodb.NewCreditRepository(db)
	follows := mongodb.NewFollowRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	chats := mongodb.NewChatRepository(db)

	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	mail := application.NewMailer(container.GetRedis(), pub, cfg.OTPTTL, cfg.MailSendEnabled, logger)
	uploads := application.NewGCSUploader(container.GetGCS(), cfg.GCSBucket)
	catalogSvc := application.NewCatalogService(categories)
	creditSvc := application.NewCreditService(credits, categories, logger)
	adSvc := application.NewAdService(ads, users, catalogSvc, creditSvc, uploads, logger, cfg.HistoryLimit)
	feedSvc := application.NewFeedService(ads, users, logger, cfg.MaxDistanceKM, cfg.FeedPageSize)
	followSvc := application.NewFollowService(users, follows, logger)
	userSvc := application.NewUserService(users, ads, chats, uploads, mail, logger)
	authSvc := application.NewAuthService(users, follows, creditSvc, mail, container.GetJWT(), logger)
	favSvc := application.NewFavoriteService(ads, users, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, followSvc, logger), container.GetJWT()))
	r.Add(modules.NewAdModule(handlers.NewAdHandler(adSvc, feedSvc, logger, cfg.FeedPageSize), container.GetJWT()))
	r.Add(modules.NewFavoriteModule(handlers.NewFavoriteHandler(favSvc, logger), container.GetJWT()))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(catalogSvc, logger)))
}
