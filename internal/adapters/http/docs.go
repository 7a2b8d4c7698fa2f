package http

import (
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
)

const openapiPath = "api/openapi.yaml"

// SetupDocs serves Swagger UI at /docs and the contract it renders at
// /docs/openapi.yaml. The contract file is read once and cached; it does
// not change while the process runs.
func SetupDocs(app *fiber.App) {
	var (
		once sync.Once
		doc  []byte
	)
	loadDoc := func() []byte {
		once.Do(func() {
			doc, _ = os.ReadFile(openapiPath)
		})
		return doc
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(swaggerPage("StraatRadar API", "/docs/openapi.yaml"))
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		data := loadDoc()
		if data == nil {
			return c.Status(404).JSON(fiber.Map{"error": "api contract not found"})
		}
		c.Set("Content-Type", "application/yaml")
		return c.Send(data)
	})
}

func swaggerPage(title, specURL string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>` + title + ` docs</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
  <style>body{margin:0;background:#fafafa}</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '` + specURL + `',
      dom_id: '#swagger-ui',
      deepLinking: true,
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout',
    });
  </script>
</body>
</html>`
}
