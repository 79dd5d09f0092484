package api

import (
	"net/http"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	_ "github.com/Sandeep010-hub/promptcraft-fusion/docs"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/functions"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/auth"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/common/upload"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/prompt"
	userRoutes "github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/user"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CORSAllowHeaders are the request headers browser clients send.
var CORSAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// NewRouter builds the HTTP handler. Connections and service registrations
// must already be in place.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              CORSAllowHeaders,
		ExposeHeaders:             []string{"Content-Length", "X-Request-ID"},
		MaxAge:                    300,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.StorageDriver == "local" || cfg.StorageDriver == "" {
		router.Static(storageMountPath(cfg.StoragePublicBaseURL), cfg.StorageLocalPath)
	}

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)
		prompt.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			upload.RegisterRoutes(authorized)
		}
	}

	functions.RegisterRoutes(router)

	return router
}

// storageMountPath returns the path component of the public base URL, so
// local files are served where their public URLs point.
func storageMountPath(publicBaseURL string) string {
	path := publicBaseURL
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
		if j := strings.Index(path, "/"); j >= 0 {
			path = path[j:]
		} else {
			path = ""
		}
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/storage"
	}
	return path
}
