package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/editor"
	"github.com/jhoicas/Facturador-api/internal/application/export"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EditorUC *editor.UseCase
	ExportUC *export.UseCase
}

// Router registra las rutas de la API. Dos superficies: el editor (el
// formulario) y la vista previa/exportación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Editor
	draftGroup := api.Group("/draft")
	draftHandler := NewDraftHandler(deps.EditorUC)
	draftGroup.Get("/", draftHandler.Get)
	draftGroup.Put("/", draftHandler.Replace)
	draftGroup.Patch("/fields", draftHandler.SetField)
	draftGroup.Post("/items", draftHandler.AddItem)
	draftGroup.Patch("/items/:id", draftHandler.SetItemField)
	draftGroup.Delete("/items/:id", draftHandler.RemoveItem)
	draftGroup.Post("/new", draftHandler.New)
	draftGroup.Post("/touch", draftHandler.Touch)

	// Vista previa y exportación
	exportHandler := NewExportHandler(deps.ExportUC)
	api.Post("/preview", exportHandler.Preview)
	exports := api.Group("/exports")
	exports.Post("/", exportHandler.Start)
	exports.Get("/:id", exportHandler.Status)
	exports.Get("/:id/pdf", exportHandler.Download)
}
