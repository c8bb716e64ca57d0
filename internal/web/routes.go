package web

import (
	"github.com/gin-gonic/gin"
)

// The mirror uses the same paths as dfam.org, so pointing api.url at it is
// all a client needs.
func (app *application) routes() *gin.Engine {
	api := app.Mux.Group("/api")
	{
		api.GET("/version", app.version)
		api.GET("/families", app.families)
		api.GET("/families/:accession", app.family)
	}

	return app.Mux
}
