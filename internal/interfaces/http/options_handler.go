package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/application/editor"
	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
)

// Options godoc
// @Summary      Opciones del formulario
// @Description  Plantillas, monedas, unidades y locales con etiquetas en el locale pedido.
// @Tags         options
// @Produce      json
// @Param        locale  query     string  false  "locale de las etiquetas"
// @Success      200     {object}  dto.OptionsResponse
// @Router       /api/options [get]
func Options(c *fiber.Ctx) error {
	lang := document.ResolveLocale(c.Query("locale"))
	l := document.LabelsFor(string(lang))

	out := dto.OptionsResponse{
		Locale:     string(lang),
		Templates:  make([]dto.OptionResponse, 0, len(entity.Templates)),
		Currencies: make([]dto.OptionResponse, 0, len(entity.Currencies)),
		Units:      make([]dto.OptionResponse, 0, len(entity.Units)),
		Locales:    make([]string, 0, len(document.Locales)),
		Fields:     editor.Fields,
	}
	for _, t := range entity.Templates {
		out.Templates = append(out.Templates, dto.OptionResponse{Value: string(t), Label: l.Templates[t]})
	}
	for _, cur := range entity.Currencies {
		out.Currencies = append(out.Currencies, dto.OptionResponse{
			Value:  cur.Value,
			Label:  l.Currencies[entity.Currency(cur.Value)],
			Symbol: cur.Symbol,
		})
	}
	for _, u := range entity.Units {
		out.Units = append(out.Units, dto.OptionResponse{Value: string(u), Label: l.Units[u]})
	}
	for _, loc := range document.Locales {
		out.Locales = append(out.Locales, string(loc))
	}
	return c.JSON(out)
}
