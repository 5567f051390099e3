package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/internal/middleware"
	"github.com/cantouch/socialflow-backend/internal/repository"
	"github.com/cantouch/socialflow-backend/internal/service"
)

// GenerateHandler drives the content-generation workflow over HTTP
type GenerateHandler struct {
	generator *service.Generator
	history   *repository.GenerationRepository // may be nil when no DB is configured
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(generator *service.Generator, history *repository.GenerationRepository) *GenerateHandler {
	return &GenerateHandler{generator: generator, history: history}
}

// Generate handles POST /api/v1/generate
// @Summary Generate campaign drafts for the selected platforms
// @Tags generate
// @Accept json
// @Produce json
// @Param request body domain.BrandInfo true "campaign input"
// @Success 200 {object} common.APIResponse
// @Failure 400 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Router /generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	session := middleware.GetSession(c)

	var info domain.BrandInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := session.Workflow.BeginSubmit(info)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.runGeneration(c, session, input)
}

// Regenerate handles POST /api/v1/generate/regenerate using the last
// successfully submitted input (or the live form if none succeeded yet).
// @Summary Regenerate drafts from the last submitted campaign
// @Tags generate
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /generate/regenerate [post]
func (h *GenerateHandler) Regenerate(c *gin.Context) {
	session := middleware.GetSession(c)

	input, err := session.Workflow.BeginRegenerate()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.runGeneration(c, session, input)
}

func (h *GenerateHandler) runGeneration(c *gin.Context, session *service.Session, input domain.BrandInfo) {
	apiKey := session.Credentials.Resolve()
	content, err := h.generator.Generate(c.Request.Context(), input, apiKey)
	if err != nil {
		session.Workflow.Fail(err)
		if common.IsCredentialError(err) {
			session.Credentials.MarkAuthFailure()
		}
		middleware.ObserveGenerationCall("content", "error")
		respondServiceError(c, err)
		return
	}

	session.Workflow.Complete(input, content)
	middleware.ObserveGenerationCall("content", "success")
	common.SuccessResponse(c, session.Workflow.Snapshot(), &common.Meta{Count: len(content)})
}

// Result handles GET /api/v1/generate/result
// @Summary Current workflow state and generated drafts
// @Tags generate
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /generate/result [get]
func (h *GenerateHandler) Result(c *gin.Context) {
	session := middleware.GetSession(c)
	common.SuccessResponse(c, session.Workflow.Snapshot(), nil)
}

// UpdatePost handles PATCH /api/v1/generate/posts/:index for local edits
// @Summary Edit one generated draft in place
// @Tags generate
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /generate/posts/{index} [patch]
func (h *GenerateHandler) UpdatePost(c *gin.Context) {
	session := middleware.GetSession(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid post index", err)
		return
	}

	var post domain.SocialPost
	if err := c.ShouldBindJSON(&post); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := session.Workflow.UpdatePost(index, post); err != nil {
		respondServiceError(c, err)
		return
	}
	common.SuccessResponse(c, session.Workflow.Snapshot(), nil)
}

// RefinePostRequest carries a single rewrite instruction
type RefinePostRequest struct {
	Instruction string `json:"instruction" binding:"required"`
}

// RefinePost handles POST /api/v1/generate/posts/:index/refine.
// Exactly one post body is rewritten; a failed call leaves it untouched.
// @Summary Rewrite one draft per a short instruction
// @Tags generate
// @Accept json
// @Produce json
// @Param request body RefinePostRequest true "rewrite instruction"
// @Success 200 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Router /generate/posts/{index}/refine [post]
func (h *GenerateHandler) RefinePost(c *gin.Context) {
	session := middleware.GetSession(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid post index", err)
		return
	}

	var req RefinePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	post, err := session.Workflow.Post(index)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apiKey := session.Credentials.Resolve()
	refined, err := h.generator.Refine(c.Request.Context(), post.Content, post.Platform, req.Instruction, apiKey)
	if err != nil {
		if common.IsCredentialError(err) {
			session.Credentials.MarkAuthFailure()
		}
		middleware.ObserveGenerationCall("refine", "error")
		respondServiceError(c, err)
		return
	}

	if err := session.Workflow.ApplyRefinement(index, refined); err != nil {
		respondServiceError(c, err)
		return
	}
	middleware.ObserveGenerationCall("refine", "success")
	common.SuccessResponse(c, gin.H{"content": refined}, nil)
}

// GenerateImage handles POST /api/v1/generate/posts/:index/image.
// The image brief derives from the post and the campaign that produced it;
// calling again regenerates and replaces the image.
// @Summary Generate an image for one draft
// @Tags generate
// @Produce json
// @Success 200 {object} common.APIResponse
// @Failure 401 {object} common.APIResponse
// @Router /generate/posts/{index}/image [post]
func (h *GenerateHandler) GenerateImage(c *gin.Context) {
	session := middleware.GetSession(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid post index", err)
		return
	}

	post, err := session.Workflow.Post(index)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !post.Platform.SupportsImage() {
		common.ErrorResponse(c, http.StatusBadRequest,
			fmt.Sprintf("image attachment is not supported for %s", post.Platform), nil)
		return
	}

	prompt := service.BuildImagePrompt(post, session.Workflow.SourceInfo())
	apiKey := session.Credentials.Resolve()
	dataURI, err := h.generator.GenerateImage(c.Request.Context(), prompt, apiKey)
	if err != nil {
		if common.IsCredentialError(err) {
			session.Credentials.MarkAuthFailure()
		}
		middleware.ObserveGenerationCall("image", "error")
		respondServiceError(c, err)
		return
	}

	if err := session.Workflow.AttachImage(index, dataURI); err != nil {
		respondServiceError(c, err)
		return
	}
	middleware.ObserveGenerationCall("image", "success")
	common.SuccessResponse(c, gin.H{"imageUrl": dataURI}, nil)
}

// ExportCSV handles GET /api/v1/generate/export
// @Summary Download the current drafts as CSV
// @Tags generate
// @Produce text/csv
// @Success 200 {string} string
// @Failure 404 {object} common.APIResponse
// @Router /generate/export [get]
func (h *GenerateHandler) ExportCSV(c *gin.Context) {
	session := middleware.GetSession(c)

	content, err := session.Workflow.Result()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("socialflow_campaign_%d.csv", time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", service.ExportCSV(content))
}

// History handles GET /api/v1/generate/history
// @Summary Recent generation attempts
// @Tags generate
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /generate/history [get]
func (h *GenerateHandler) History(c *gin.Context) {
	if h.history == nil {
		common.ErrorResponse(c, http.StatusNotFound, "generation history is not enabled", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.history.ListRecent(limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load history", err)
		return
	}
	common.SuccessResponse(c, records, &common.Meta{Count: len(records)})
}
