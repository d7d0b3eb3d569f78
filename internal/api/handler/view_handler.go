package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/api/metrics"
	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// The local API only serves the UI host on this machine.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		switch u.Hostname() {
		case "localhost", "127.0.0.1", "::1":
			return true
		}
		return false
	},
}

// ViewHandler exposes content view operations to the UI host.
type ViewHandler struct {
	shell ports.ShellService
	log   zerolog.Logger
}

func NewViewHandler(shell ports.ShellService, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{shell: shell, log: log}
}

// Open creates a content view for a module.
//
// @Summary      Open a content view
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        body  body      openViewRequest  true  "Module to open"
// @Success      201   {object}  domain.LoadTicket
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/views [post]
func (h *ViewHandler) Open(c echo.Context) error {
	var req openViewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ticket, err := h.shell.Open(req.ModuleID)
	if err != nil {
		return err
	}
	metrics.ViewsOpen.Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/v1/views/"+ticket.ViewID)
	return c.JSON(http.StatusCreated, ticket)
}

// Get returns the view's current epoch and UI signals.
//
// @Summary      Get a content view
// @Tags         views
// @Produce      json
// @Param        id   path      string  true  "View id"
// @Success      200  {object}  domain.ViewSnapshot
// @Failure      404  {object}  errorResponse
// @Router       /v1/views/{id} [get]
func (h *ViewHandler) Get(c echo.Context) error {
	snap, err := h.shell.View(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Injected confirms that the injection payload for an epoch is installed.
//
// @Summary      Confirm injection
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "View id"
// @Param        body  body      injectedRequest  true  "Epoch the payload was built for"
// @Success      200   {object}  injectedResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/views/{id}/injected [post]
func (h *ViewHandler) Injected(c echo.Context) error {
	var req injectedRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := c.Param("id")
	start, err := h.shell.ConfirmInjected(id, req.Epoch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, injectedResponse{ViewID: id, Epoch: req.Epoch, StartURL: start})
}

// Lifecycle applies a load callback from the content host. Callbacks for a
// superseded epoch are accepted and ignored.
//
// @Summary      Report a lifecycle event
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "View id"
// @Param        body  body      lifecycleRequest  true  "Lifecycle event"
// @Success      200   {object}  lifecycleResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/views/{id}/lifecycle [post]
func (h *ViewHandler) Lifecycle(c echo.Context) error {
	var req lifecycleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := c.Param("id")
	applied, err := h.shell.Lifecycle(id, req.Epoch, domain.LifecycleEvent(req.Event), req.Error)
	if err != nil {
		metrics.LifecycleCallbacksTotal.WithLabelValues(req.Event, "rejected").Inc()
		return err
	}
	outcome := "applied"
	if !applied {
		outcome = "stale"
	}
	metrics.LifecycleCallbacksTotal.WithLabelValues(req.Event, outcome).Inc()

	snap, err := h.shell.View(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lifecycleResponse{Applied: applied, View: snap})
}

// Navigate asks the navigation guard about a navigation raised by content.
//
// @Summary      Evaluate a navigation
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "View id"
// @Param        body  body      navigateRequest  true  "Navigation attempt"
// @Success      200   {object}  domain.NavigationVerdict
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/views/{id}/navigate [post]
func (h *ViewHandler) Navigate(c echo.Context) error {
	var req navigateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	kind := domain.NavigationKind(req.Kind)
	if kind == "" {
		kind = domain.NavigationOther
	}

	verdict, err := h.shell.Navigate(c.Request().Context(), c.Param("id"), domain.NavigationRequest{URL: req.URL, Kind: kind})
	if err != nil {
		return err
	}
	metrics.NavigationDecisionsTotal.WithLabelValues(string(verdict.Decision), string(kind)).Inc()
	return c.JSON(http.StatusOK, verdict)
}

// Reload starts a new load epoch for the view.
//
// @Summary      Reload a content view
// @Tags         views
// @Produce      json
// @Param        id   path      string  true  "View id"
// @Success      200  {object}  domain.LoadTicket
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/views/{id}/reload [post]
func (h *ViewHandler) Reload(c echo.Context) error {
	ticket, err := h.shell.Reload(c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ViewReloadsTotal.Inc()
	return c.JSON(http.StatusOK, ticket)
}

// Close discards the view. Its watchers receive a final closed snapshot.
//
// @Summary      Close a content view
// @Tags         views
// @Param        id   path  string  true  "View id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/views/{id} [delete]
func (h *ViewHandler) Close(c echo.Context) error {
	if err := h.shell.Close(c.Param("id")); err != nil {
		return err
	}
	metrics.ViewsOpen.Dec()
	return c.NoContent(http.StatusNoContent)
}

// Watch streams view snapshots over a websocket until the view is closed or
// the client goes away.
//
// @Summary      Watch a content view
// @Tags         views
// @Param        id   path  string  true  "View id"
// @Success      101
// @Failure      404  {object}  errorResponse
// @Router       /v1/views/{id}/watch [get]
func (h *ViewHandler) Watch(c echo.Context) error {
	id := c.Param("id")
	updates, cancel, err := h.shell.Watch(id)
	if err != nil {
		return err
	}
	defer cancel()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Str("view_id", id).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				h.closeSocket(conn)
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(snap); err != nil {
				h.log.Debug().Err(err).Str("view_id", id).Msg("websocket write failed")
				return nil
			}
			if snap.Closed {
				h.closeSocket(conn)
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return nil
			}
		case <-gone:
			return nil
		}
	}
}

func (h *ViewHandler) closeSocket(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "view closed")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}
