package route

import (
	"time"

	"caiary/config"
	"caiary/internal/article"
	"caiary/internal/feed"
	"caiary/internal/login"
	"caiary/internal/middleware"
	"caiary/internal/refresh"
	"caiary/internal/relation"
	"caiary/internal/storage"
	"caiary/internal/user"
	dbPkg "caiary/packages/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies 路由需要的外部依赖
type Dependencies struct {
	Config *config.AppConfig
	DB     *gorm.DB
	Redis  *dbPkg.RedisClient
	Store  storage.ImageStore
	// 为空时按配置创建 Kakao 客户端
	Kakao login.IdentityProvider
}

func initRoute(r *gin.Engine, deps Dependencies) {
	conf := deps.Config

	// 初始化依赖
	userService := user.NewUserService(deps.DB)
	articleService := article.NewArticleService(deps.DB, deps.Store, article.WithLocation(conf.ArticleLocation()))
	relationService := relation.NewRelationService(relation.NewRelationRepository(deps.DB), userService, articleService)
	feedService := feed.NewFeedService(feed.NewFeedRepository(deps.DB), articleService)

	refreshTTL := time.Duration(conf.JWT.RefreshExpireTime) * time.Hour
	tokenService := refresh.NewRefreshTokenService(refresh.NewRefreshTokenRepository(deps.Redis), refreshTTL)

	kakao := deps.Kakao
	if kakao == nil {
		kakao = login.NewKakaoProvider(conf.Kakao.APIBase, conf.Kakao.Timeout)
	}
	loginService := login.NewLoginService(userService, tokenService)
	loginService.Register("kakao", kakao)

	// 本地存储时由服务自身提供图片
	if local, ok := deps.Store.(*storage.LocalStore); ok {
		r.Static(local.URLPrefix(), local.Dir())
	}

	// Swagger 文档路由，文档由 docs 子命令生成
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	users := api.Group("/users")
	login.RegisterRoutes(users, loginService, tokenService, conf.Server.CookieSecure)
	refresh.RegisterRoutes(users, tokenService, conf.Server.CookieSecure)
	user.RegisterRoutes(users, userService)

	// /articles/all 与 /articles/:id 同级，需要先于文章路由注册
	feed.RegisterRoutes(api, feedService)
	article.RegisterRoutes(api, articleService)
	relation.RegisterRoutes(api, relationService)
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())

	origin := deps.Config.Server.FrontendURL
	if origin == "" {
		origin = "http://localhost:5173" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r, deps)

	return r
}
