// Package views embeds the HTML templates and browser assets served by the app.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts/*.html applicants/*.html
var Templates embed.FS

//go:embed assets/*
var Assets embed.FS

const Layout = "layouts/main"

func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(Templates), ".html")
}
