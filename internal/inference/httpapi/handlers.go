package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modbridge/modbridge-backend/internal/inference/engine"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

// InferenceHandler maps the REST surface onto the engine. Handlers stay
// thin: bind, call, envelope. Engine failure results (success=false) are
// domain outcomes and return 200.
type InferenceHandler struct {
	eng *engine.Engine
	log *logger.Logger
}

func NewInferenceHandler(eng *engine.Engine, log *logger.Logger) *InferenceHandler {
	return &InferenceHandler{eng: eng, log: log.With("handler", "InferenceHandler")}
}

type inferRequest struct {
	Concept          string                   `json:"concept"`
	TargetPlatform   string                   `json:"target_platform"`
	MinecraftVersion string                   `json:"minecraft_version"`
	Options          *engine.InferenceOptions `json:"options,omitempty"`
}

func (h *InferenceHandler) Infer(c *gin.Context) {
	var req inferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res := h.eng.Infer(c.Request.Context(), req.Concept, req.TargetPlatform, req.MinecraftVersion, req.Options)
	RespondOK(c, res)
}

type batchRequest struct {
	Concepts         []string `json:"concepts"`
	TargetPlatform   string   `json:"target_platform"`
	MinecraftVersion string   `json:"minecraft_version"`
}

func (h *InferenceHandler) Batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res := h.eng.BatchInfer(c.Request.Context(), req.Concepts, req.TargetPlatform, req.MinecraftVersion)
	RespondOK(c, res)
}

type optimizeRequest struct {
	Steps            []engine.SequenceStep `json:"steps"`
	TargetPlatform   string                `json:"target_platform"`
	MinecraftVersion string                `json:"minecraft_version"`
}

func (h *InferenceHandler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res := h.eng.OptimizeSequence(c.Request.Context(), req.Steps, req.TargetPlatform, req.MinecraftVersion)
	RespondOK(c, res)
}

type learnRequest struct {
	JavaConcept    string                   `json:"java_concept"`
	BedrockConcept string                   `json:"bedrock_concept"`
	Outcome        engine.ConversionOutcome `json:"outcome"`
	Metrics        engine.SuccessMetrics    `json:"metrics"`
}

func (h *InferenceHandler) Learn(c *gin.Context) {
	var req learnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res := h.eng.LearnFromConversion(c.Request.Context(), req.JavaConcept, req.BedrockConcept, req.Outcome, req.Metrics)
	RespondOK(c, res)
}

func (h *InferenceHandler) Validate(c *gin.Context) {
	var req engine.PatternInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res := h.eng.ValidatePattern(c.Request.Context(), req)
	RespondOK(c, res)
}

type compatibilityRequest struct {
	SourcePlatform   string `json:"source_platform"`
	TargetPlatform   string `json:"target_platform"`
	MinecraftVersion string `json:"minecraft_version"`
}

func (h *InferenceHandler) Compatibility(c *gin.Context) {
	var req compatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res := h.eng.CheckPlatformCompatibility(req.SourcePlatform, req.TargetPlatform, req.MinecraftVersion)
	RespondOK(c, res)
}

func (h *InferenceHandler) Statistics(c *gin.Context) {
	days := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_days", fmt.Errorf("days must be an integer, got %q", raw))
			return
		}
		days = parsed
	}
	res := h.eng.Statistics(c.Request.Context(), days)
	RespondOK(c, res)
}

// HealthHandler serves liveness and readiness. Readiness reflects whether
// the required stores were wired at startup.
type HealthHandler struct {
	ready func() bool
}

func NewHealthHandler(ready func() bool) *HealthHandler {
	return &HealthHandler{ready: ready}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	if h.ready != nil && !h.ready() {
		c.String(http.StatusServiceUnavailable, "stores unavailable")
		return
	}
	c.String(http.StatusOK, "ready")
}
