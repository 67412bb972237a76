package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/editor"
)

// LocalsSessionID clave en Locals del id de sesión validado.
const LocalsSessionID = "sessionID"

// RequireSession comprueba que :id sea una sesión viva antes de llegar al
// handler; si no, responde 404 SESSION_NOT_FOUND.
func RequireSession(store *editor.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := store.Get(id); err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalsSessionID, id)
		return c.Next()
	}
}

// GetSessionID id de la sesión validada por RequireSession.
func GetSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsSessionID).(string)
	return id
}
