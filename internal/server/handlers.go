package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/logging"
	"timeclock/internal/services"
)

// Handler exposes the service layer over HTTP. Handlers are thin: bind the
// request, call the service, map the error.
type Handler struct {
	services *services.ServiceContainer
	log      logging.Logger
}

// NewHandler creates the HTTP handler set bound to a service container.
func NewHandler(container *services.ServiceContainer, log logging.Logger) *Handler {
	return &Handler{
		services: container,
		log:      log.With("module", "http"),
	}
}

type pinRequest struct {
	PIN string `json:"pin"`
}

type clockRequest struct {
	UserID string `json:"user_id"`
}

type addUserRequest struct {
	RequesterID string `json:"requester_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	PIN         string `json:"pin"`
}

type deleteUserRequest struct {
	RequesterID string `json:"requester_id"`
}

type forceLogoutRequest struct {
	RequesterID string `json:"requester_id"`
	UserID      string `json:"user_id"`
	Note        string `json:"note"`
}

type editEntryRequest struct {
	EditorUserID string `json:"editor_user_id"`
	EntryID      string `json:"entry_id"`
	LoginTime    string `json:"login_time"`
	LogoutTime   string `json:"logout_time"`
	EditNote     string `json:"edit_note"`
}

type suspendRequest struct {
	RequesterID string `json:"requester_id"`
	UserID      string `json:"user_id"`
	Suspended   bool   `json:"is_suspended"`
	Note        string `json:"note"`
}

// loginUser is the trimmed account payload returned on a successful login.
// The PIN is echoed back so kiosk frontends can cache it for re-auth.
type loginUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	PIN   string      `json:"pin"`
}

type loginResponse struct {
	Message string    `json:"message"`
	User    loginUser `json:"user"`
}

type addUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// LoginByPIN authenticates any role by PIN. A PIN that resolves to no
// account answers 401, not 404.
func (h *Handler) LoginByPIN(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	user, err := h.services.Users.AuthenticateByPIN(c.Request.Context(), req.PIN)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid PIN."})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User: loginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
			PIN:   user.PIN,
		},
	})
}

// WorkerStatus resolves a PIN to a worker account and returns its clock
// state with full history. The PIN and role are checked together, so a
// privileged account's PIN answers the same 401 as an unknown one.
func (h *Handler) WorkerStatus(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	user, ok := h.services.Users.FindByPIN(req.PIN)
	if !ok || user.Role != domain.RoleWorker {
		c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid PIN or not a worker account."})
		return
	}
	if user.Suspended {
		c.JSON(http.StatusForbidden, messageResponse{Message: "Account is suspended. Please contact your administrator."})
		return
	}

	snapshot, err := h.services.Entries.GetWorkerSnapshot(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ClockIn opens a time entry for the user.
func (h *Handler) ClockIn(c *gin.Context) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	result, err := h.services.Entries.ClockIn(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Thank you, %s! You have been clocked in.", result.UserName),
	})
}

// ClockOut closes the user's active entry, consolidating same-day sessions.
func (h *Handler) ClockOut(c *gin.Context) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	result, err := h.services.Entries.ClockOut(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := fmt.Sprintf("Thank you, %s! You have been clocked out.", result.UserName)
	if result.Consolidated {
		message = fmt.Sprintf("Thank you, %s! Your hours for today have been updated.", result.UserName)
	}
	c.JSON(http.StatusOK, messageResponse{Message: message})
}

// ListUsers returns every account, PINs redacted, suspension notes hydrated.
func (h *Handler) ListUsers(c *gin.Context) {
	views, err := h.services.Users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// AddUser creates an account on behalf of the requester.
func (h *Handler) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	user, err := h.services.Users.AddUser(c.Request.Context(), req.RequesterID, services.NewUserParams{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  domain.Role(req.Role),
		PIN:   req.PIN,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addUserResponse{
		Message: "User added successfully",
		UserID:  user.ID,
	})
}

// DeleteUser removes an account and everything it owns.
func (h *Handler) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	if err := h.services.Users.DeleteUser(c.Request.Context(), req.RequesterID, c.Param("user_id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "User and associated time entries deleted successfully"})
}

// ForceLogout closes another user's active entry with an audit note.
func (h *Handler) ForceLogout(c *gin.Context) {
	var req forceLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	result, err := h.services.Entries.ForceLogout(c.Request.Context(), req.RequesterID, req.UserID, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s has been successfully logged out.", result.UserName),
	})
}

// EditTimeEntry overwrites an entry's times with a mandatory reason.
func (h *Handler) EditTimeEntry(c *gin.Context) {
	var req editEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	loginTime, err := parseEntryTime(req.LoginTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid date format for login time."})
		return
	}
	var logoutTime *time.Time
	if req.LogoutTime != "" {
		t, err := parseEntryTime(req.LogoutTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid date format for logout time."})
			return
		}
		logoutTime = &t
	}

	if _, err := h.services.Entries.EditEntry(c.Request.Context(), req.EditorUserID, req.EntryID, loginTime, logoutTime, req.EditNote); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Time entry updated successfully!"})
}

// ListTimeEntries returns every entry with owner names and hydrated notes.
func (h *Handler) ListTimeEntries(c *gin.Context) {
	views, err := h.services.Entries.ListEntries(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// SuspendUser suspends or unsuspends an account with a mandatory note.
func (h *Handler) SuspendUser(c *gin.Context) {
	var req suspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c)
		return
	}

	user, err := h.services.Users.SetSuspension(c.Request.Context(), req.RequesterID, req.UserID, req.Suspended, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	action := "suspended"
	if !req.Suspended {
		action = "unsuspended"
	}
	c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("User %s has been %s successfully.", user.Name, action),
	})
}

// GetNote returns a single note by id.
func (h *Handler) GetNote(c *gin.Context) {
	note, err := h.services.Notes.GetNote(c.Request.Context(), c.Param("note_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// NotesForEntity returns an entity's notes oldest first, [] when none.
func (h *Handler) NotesForEntity(c *gin.Context) {
	notes, err := h.services.Notes.NotesForEntity(c.Request.Context(), c.Param("entity_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// entryTimeLayouts are accepted for edited times: full RFC3339, naive with
// seconds, and the datetime-local format browsers submit.
var entryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseEntryTime(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range entryTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
