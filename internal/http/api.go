package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskpilot/internal/domain"
	"taskpilot/internal/sentiment"
	"taskpilot/internal/service"
	"taskpilot/pkg/apierrors"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts service.AccountService
	tasks    service.TaskService
	analyzer sentiment.Analyzer
	store    Pinger
	catalog  *apierrors.Catalog
	logger   logrus.FieldLogger
}

func NewHandler(
	accounts service.AccountService,
	tasks service.TaskService,
	analyzer sentiment.Analyzer,
	store Pinger,
	catalog *apierrors.Catalog,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		accounts: accounts,
		tasks:    tasks,
		analyzer: analyzer,
		store:    store,
		catalog:  catalog,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	useJSONFieldNames()

	router.Use(requestIDMiddleware(), accessLogMiddleware(h.logger), languageMiddleware(), corsMiddleware())

	router.GET("/health", h.health)

	router.POST("/register", h.register)
	router.POST("/login", h.login)

	router.POST("/tasks", h.createTask)
	router.GET("/tasks/:user_id", h.listTasks)
	router.GET("/tasks/:user_id/:priority/:status", h.listByPriorityAndStatus)
	router.GET("/tasks/overdue/:user_id", h.listOverdue)
	router.GET("/tasks/prioritize/:user_id", h.prioritize)
	router.POST("/tasks/analyze/sentiment", h.analyzeSentiment)
}

func (h *Handler) health(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			loggerFrom(c, h.logger).WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, accountResponse{
		Message: h.catalog.Message(apierrors.MsgRegistered, langFrom(c), nil),
		UserID:  account.ID,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	account, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse{
		Message: h.catalog.Message(apierrors.MsgLoggedIn, langFrom(c), nil),
		UserID:  account.ID,
	})
}

func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createTaskResponse{
		Message: h.catalog.Message(apierrors.MsgTaskCreated, langFrom(c), nil),
		TaskID:  task.ID,
	})
}

func (h *Handler) listTasks(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListTasks(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listOverdue(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListOverdue(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBriefs(tasks))
}

func (h *Handler) listByPriorityAndStatus(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByPriorityAndStatus(c.Request.Context(), userID, c.Param("priority"), c.Param("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBriefs(tasks))
}

func (h *Handler) prioritize(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	ranked, err := h.tasks.Prioritize(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]RankedTaskResponse, len(ranked))
	for i := range ranked {
		resp[i] = rankedToResponse(ranked[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) analyzeSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	results, err := h.analyzer.Analyze(c.Request.Context(), req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := sentimentResponse{
		Description: req.Description,
		Sentiment:   make([]sentimentResult, len(results)),
	}
	for i, r := range results {
		resp.Sentiment[i] = sentimentResult{Label: r.Label, Score: r.Score}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, h.catalog.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUserID, langFrom(c), nil))
		return 0, false
	}
	return id, true
}

func toBriefs(tasks []domain.Task) []TaskBriefResponse {
	resp := make([]TaskBriefResponse, len(tasks))
	for i := range tasks {
		resp[i] = TaskBriefResponse{
			ID:          tasks[i].ID,
			Title:       tasks[i].Title,
			Description: tasks[i].Description,
		}
	}
	return resp
}
