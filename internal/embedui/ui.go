package embedui

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed ui/**
var embedFS embed.FS

// RegisterUIHandlers serves the embedded replay UI for every GET or HEAD
// request outside /api/, falling back to index.html for unknown paths.
func RegisterUIHandlers(router *gin.Engine) {
	uiFS, err := fs.Sub(embedFS, "ui")
	if err != nil {
		panic("embedui: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(uiFS))

	router.Use(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		path := strings.TrimPrefix(c.Request.URL.Path, "/")
		if f, err := uiFS.Open(path); err != nil {
			c.Request.URL.Path = "/"
		} else {
			f.Close()
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	})
}
