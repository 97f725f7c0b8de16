// api/router.go
package api

import (
	"net/http"

	"babel/internal/dsl"

	"github.com/gin-gonic/gin"
)

func NewRouter(storage *Storage, defaultLang dsl.Lang) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/tables", ListTablesHandler(storage))
		apiGroup.POST("/tables", CreateTableHandler(storage))
		apiGroup.GET("/tables/:name", GetTableHandler(storage))
		apiGroup.DELETE("/tables/:name", DeleteTableHandler(storage))
		apiGroup.GET("/tables/:name/definition", DefinitionHandler(storage))
		apiGroup.GET("/tables/:name/declaration", DeclarationHandler(storage, defaultLang))
		apiGroup.GET("/tables/:name/keys", KeysHandler(storage))

		apiGroup.POST("/translate", TranslateHandler(defaultLang))
		apiGroup.GET("/lint", LintHandler(storage))
		apiGroup.GET("/stores", StoresHandler(storage))
	}

	return r
}

func RunServer(addr string, storage *Storage, defaultLang dsl.Lang) {
	_ = NewRouter(storage, defaultLang).Run(addr)
}
