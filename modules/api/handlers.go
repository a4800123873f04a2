package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/dashboard"
	task "github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer      mono.ServiceContainer
	taskContainer      mono.ServiceContainer
	dashboardContainer mono.ServiceContainer
	authAdapter        auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer, dashboardContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer:      authContainer,
		taskContainer:      taskContainer,
		dashboardContainer: dashboardContainer,
		authAdapter:        authAdapter,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "All fields are required")
	}

	authReq := auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.AuthResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAuthResponse(resp))
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.AuthResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAuthResponse(resp))
}

// GoogleLogin handles Google sign-in.
func (h *Handlers) GoogleLogin(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.TokenID == "" {
		return badRequest(c, "Token missing")
	}

	authReq := auth.GoogleLoginRequest{TokenID: req.TokenID}
	var resp auth.AuthResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"google-login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAuthResponse(resp))
}

// Me returns the authenticated user's profile.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims, err := actingUser(c)
	if err != nil {
		return err
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// ListTasks returns the acting user's tasks, most recent first.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, err := actingUser(c)
	if err != nil {
		return err
	}

	taskReq := task.ListTasksRequest{UserID: claims.UserID}
	var resp task.ListTasksResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"list",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

// CreateTask creates a task owned by the acting user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, err := actingUser(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := task.CreateTaskRequest{
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	var resp task.TaskData

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"create",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(resp))
}

// UpdateTask applies a sparse patch to a task owned by the acting user.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, err := actingUser(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := task.UpdateTaskRequest{
		UserID:      claims.UserID,
		TaskID:      c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
	}
	var resp task.TaskData

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"update",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskResponse(resp))
}

// DeleteTask deletes a task owned by the acting user.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, err := actingUser(c)
	if err != nil {
		return err
	}

	taskReq := task.DeleteTaskRequest{
		UserID: claims.UserID,
		TaskID: c.Params("id"),
	}
	var resp task.DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Task deleted"})
}

// Dashboard returns the derived view of the acting user's tasks: counters
// from the full collection plus the tasks matching the status/month/year
// filters, all combined with AND.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	claims, err := actingUser(c)
	if err != nil {
		return err
	}

	dashReq := dashboard.SnapshotRequest{
		UserID: claims.UserID,
		Status: c.Query("status", dashboard.StatusAll),
		Month:  c.QueryInt("month"),
		Year:   c.QueryInt("year"),
	}
	var resp dashboard.SnapshotResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.dashboardContainer,
		"snapshot",
		json.Marshal,
		json.Unmarshal,
		&dashReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	tasks := make([]TaskResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}

	return c.Status(fiber.StatusOK).JSON(DashboardResponse{
		Tasks:     tasks,
		Total:     resp.Total,
		Completed: resp.Completed,
		Pending:   resp.Pending,
	})
}

// actingUser returns the identity bound by the auth middleware. Missing
// claims mean a route skipped the middleware; the returned error stops the
// handler before it touches nil claims and lets the error handler respond.
func actingUser(c *fiber.Ctx) (*domain.Claims, error) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// badRequest writes a 400 response with the given message.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// handleServiceError maps service errors to HTTP responses by matching
// known error messages. Unrecognized errors are logged but never leaked
// to the client.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "all fields are required"):
		return badRequest(c, "All fields are required")
	case strings.Contains(errStr, "user with this email already exists"):
		return badRequest(c, "User already exists")
	case strings.Contains(errStr, "invalid credentials"):
		return badRequest(c, "Invalid credentials")
	case strings.Contains(errStr, "invalid google token"):
		return badRequest(c, "Invalid Google token")
	case strings.Contains(errStr, "invalid category"):
		return badRequest(c, "Invalid category")
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// toAuthResponse converts an auth module response to the wire shape.
func toAuthResponse(resp auth.AuthResponse) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
		Token: resp.Token,
	}
}
