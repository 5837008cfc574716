package v1

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"redactor/internal/domain/entity"
	"redactor/pkg/utils"
)

type ReportUseCase interface {
	ProcessReport(ctx context.Context, job *entity.Job) *entity.ReportResult
}

type JobEnqueuer interface {
	Push(ctx context.Context, payload []byte) error
}

// WorkerHandler exposes the worker's operational surface: liveness and a
// manual trigger that bypasses or feeds the queue.
type WorkerHandler struct {
	UseCase ReportUseCase
	Queue   JobEnqueuer
	started time.Time
}

func NewWorkerHandler(u ReportUseCase, q JobEnqueuer) *WorkerHandler {
	return &WorkerHandler{
		UseCase: u,
		Queue:   q,
		started: time.Now(),
	}
}

func (h *WorkerHandler) Health(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"uptimeSeconds":  int(time.Since(h.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"heapAllocBytes": mem.HeapAlloc,
		"numGC":          mem.NumGC,
	})
}

// Process runs a single job synchronously and returns its ReportResult.
// With ?async=true the job is enqueued for the intake loop instead.
func (h *WorkerHandler) Process(c *gin.Context) {
	var job entity.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job payload"})
		return
	}

	if c.Query("async") == "true" {
		payload, err := utils.ToRawMessage(job)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := h.Queue.Push(c.Request.Context(), payload); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "job enqueued", "reportId": job.ReportID})
		return
	}

	result := h.UseCase.ProcessReport(c.Request.Context(), &job)
	c.JSON(http.StatusOK, result)
}
