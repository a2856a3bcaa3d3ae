package webui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/dashboard"
	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
)

const sessionCookie = "stockboard_session"

// DashboardHandler adapts HTTP requests onto the dashboard core. Every
// mutating route runs one coordinator operation and responds with the fresh
// view model; markup is left to whatever frontend consumes it.
type DashboardHandler struct {
	sessions  *SessionManager
	apiClient inventory.Client
	logger    *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter. apiClient is the
// unauthenticated client used for login only.
func NewDashboardHandler(sessions *SessionManager, apiClient inventory.Client, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{sessions: sessions, apiClient: apiClient, logger: logger}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the inventory API and mounts a fresh dashboard
// session.
func (h *DashboardHandler) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing email or password"})
		return
	}

	resp, err := h.apiClient.Login(c.Request.Context(), inventory.LoginRequest{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		var apiErr *inventory.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, gin.H{"message": inventory.ErrorMessage(err, "Login failed")})
			return
		}
		h.logger.Error("login request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "Login failed"})
		return
	}

	session := h.sessions.Create(resp.User, resp.AccessToken)
	session.Dash.Start(c.Request.Context())

	c.SetCookie(sessionCookie, session.ID, 0, "/", "", false, true)
	h.render(c, session)
}

// Logout ends the session via the dashboard's session capability.
func (h *DashboardHandler) Logout(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	session.Dash.Logout()
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Show renders the current view model.
func (h *DashboardHandler) Show(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	h.render(c, session)
}

// SelectTab activates the items or stats view.
func (h *DashboardHandler) SelectTab(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	switch c.Param("tab") {
	case "items":
		session.Dash.ShowItems(c.Request.Context())
	case "stats":
		session.Dash.ShowStats(c.Request.Context())
	default:
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown tab"})
		return
	}

	h.render(c, session)
}

type searchPayload struct {
	Search string `json:"search"`
}

// Search submits the search text, forcing a refetch at page 1.
func (h *DashboardHandler) Search(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var payload searchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	session.Dash.List().SubmitSearch(c.Request.Context(), payload.Search)
	h.render(c, session)
}

type categoryPayload struct {
	Category string `json:"category"`
}

// FilterCategory applies the category filter. An empty category clears it.
func (h *DashboardHandler) FilterCategory(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	category := models.Category(payload.Category)
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown category"})
		return
	}

	session.Dash.List().SetCategory(c.Request.Context(), category)
	h.render(c, session)
}

// NextPage advances the list one page.
func (h *DashboardHandler) NextPage(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.Dash.List().NextPage(c.Request.Context())
	h.render(c, session)
}

// PrevPage goes back one page.
func (h *DashboardHandler) PrevPage(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.Dash.List().PrevPage(c.Request.Context())
	h.render(c, session)
}

// AddItem opens the form in create mode.
func (h *DashboardHandler) AddItem(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.Dash.AddNew()
	h.render(c, session)
}

// EditItem opens the form seeded from a currently listed item.
func (h *DashboardHandler) EditItem(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	id := c.Param("id")
	var target *models.Item
	for _, item := range session.Dash.List().Snapshot().Items {
		if item.ID == id {
			found := item
			target = &found
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}

	session.Dash.Edit(*target)
	h.render(c, session)
}

// DeleteItem deletes a listed item. The confirm query parameter carries the
// user's answer to the confirmation prompt; anything but "true" cancels.
func (h *DashboardHandler) DeleteItem(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := session.Dash.DeleteItem(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		h.renderAlert(c, session, err.Error())
		return
	}

	h.render(c, session)
}

// SubmitForm submits the entered draft.
func (h *DashboardHandler) SubmitForm(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var draft models.ItemDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// Submission errors surface inside the form view, not as a failed
	// request; the entered values stay intact either way.
	_ = session.Dash.SubmitForm(c.Request.Context(), draft)
	h.render(c, session)
}

// CancelForm discards the form and returns to the list.
func (h *DashboardHandler) CancelForm(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}
	session.Dash.CancelForm(c.Request.Context())
	h.render(c, session)
}

func (h *DashboardHandler) session(c *gin.Context) *Session {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
		return nil
	}

	session, ok := h.sessions.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired"})
		return nil
	}
	return session
}

func (h *DashboardHandler) render(c *gin.Context, session *Session) {
	c.JSON(http.StatusOK, buildViewModel(session.Dash, ""))
}

func (h *DashboardHandler) renderAlert(c *gin.Context, session *Session, alert string) {
	c.JSON(http.StatusOK, buildViewModel(session.Dash, alert))
}

func buildViewModel(d *dashboard.Dashboard, alert string) viewModel {
	vm := viewModel{
		View:  d.View(),
		User:  d.CurrentUser(),
		Alert: alert,
	}

	switch vm.View {
	case dashboard.ViewItems:
		vm.List = listViewFrom(d.List().Snapshot())
	case dashboard.ViewForm:
		vm.Form = formViewFrom(d.Form().Snapshot())
	case dashboard.ViewStats:
		vm.Stats = statsViewFrom(d.Stats().Snapshot())
	}

	return vm
}
