package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

type ModuleHandler struct {
	shell ports.ShellService
}

func NewModuleHandler(shell ports.ShellService) *ModuleHandler {
	return &ModuleHandler{shell: shell}
}

// List returns the module catalog for the configured environment.
//
// @Summary      List modules
// @Tags         modules
// @Produce      json
// @Success      200  {array}  domain.ModuleDescriptor
// @Router       /v1/modules [get]
func (h *ModuleHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.shell.Modules())
}

// QuickActions returns the home screen shortcuts.
//
// @Summary      List quick actions
// @Tags         modules
// @Produce      json
// @Success      200  {array}  domain.QuickAction
// @Router       /v1/quick-actions [get]
func (h *ModuleHandler) QuickActions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.shell.QuickActions())
}
