package server

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/service"
	"github.com/cns-tools/store-creator/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler bundles request-time dependencies for the API routes.
type Handler struct {
	cfg          *config.Config
	batchManager *BatchManager
}

// newHandler constructs a Handler with attached dependencies.
func newHandler(cfg *config.Config, batchManager *BatchManager) *Handler {
	return &Handler{
		cfg:          cfg,
		batchManager: batchManager,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, newResponseBuilder().BuildHealthResponse())
}

func (h *Handler) createGroups(c *gin.Context) {
	batchID := startBatch(c)

	// Validate the environment before touching the upload
	env, err := config.ParseEnvironment(c.Param(EnvironmentParam))
	if err != nil {
		utils.Logger.Warn("Invalid environment",
			zap.String(utils.FieldBatchID, batchID),
			zap.String(utils.FieldEnvironment, c.Param(EnvironmentParam)))
		c.JSON(http.StatusBadRequest, newResponseBuilder().BuildErrorResponse(MessageInvalidEnvironment, nil))
		return
	}

	file, ok := openUpload(c, batchID)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.batchManager.Create(dispatchContext(c), batchID, env, file)
	respond(c, result, err)
}

func (h *Handler) deleteGroups(c *gin.Context) {
	batchID := startBatch(c)

	file, ok := openUpload(c, batchID)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.batchManager.Delete(dispatchContext(c), batchID, file)
	respond(c, result, err)
}

// startBatch assigns a batch id and echoes it to the uploader.
func startBatch(c *gin.Context) string {
	batchID := NewBatchID()
	c.Header(BatchIDHeader, batchID)
	return batchID
}

// dispatchContext keeps request values but not its cancellation: a batch runs to
// completion once started, even if the uploader disconnects.
func dispatchContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func openUpload(c *gin.Context, batchID string) (multipart.File, bool) {
	respBuilder := newResponseBuilder()

	header, err := c.FormFile(UploadFormField)
	if err != nil {
		utils.Logger.Warn("Upload without CSV file",
			zap.String(utils.FieldBatchID, batchID),
			zap.String(utils.FieldPath, c.Request.URL.Path),
			zap.Error(err))
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			c.JSON(http.StatusBadRequest, respBuilder.BuildErrorResponse(MessageFileRequired, nil))
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, respBuilder.BuildErrorResponse(MessageUploadTooLarge, gin.H{"limit_bytes": tooLarge.Limit}))
		default:
			c.JSON(http.StatusBadRequest, respBuilder.BuildErrorResponse(MessageInvalidUpload, err.Error()))
		}
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		utils.Logger.Error("Failed to open uploaded file",
			zap.String(utils.FieldBatchID, batchID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, respBuilder.BuildErrorResponse(MessageInternalError, nil))
		return nil, false
	}
	return file, true
}

func respond(c *gin.Context, result *BatchResult, err error) {
	respBuilder := newResponseBuilder()

	if err != nil {
		var rowErr *service.RowValidationError
		switch {
		case errors.As(err, &rowErr):
			c.JSON(http.StatusBadRequest, respBuilder.BuildErrorResponse(MessageInvalidCSV, rowErr.Errors))
		case errors.Is(err, service.ErrInvalidCSV):
			c.JSON(http.StatusBadRequest, respBuilder.BuildErrorResponse(MessageInvalidCSV, err.Error()))
		case errors.Is(err, config.ErrInvalidEnvironment):
			c.JSON(http.StatusBadRequest, respBuilder.BuildErrorResponse(MessageInvalidEnvironment, nil))
		default:
			utils.Logger.Error("Batch failed unexpectedly", zap.Error(err))
			c.JSON(http.StatusInternalServerError, respBuilder.BuildErrorResponse(MessageInternalError, nil))
		}
		return
	}

	if !result.Succeeded() {
		c.JSON(http.StatusBadRequest, respBuilder.BuildFailedGroupsResponse(result.Failed))
		return
	}
	c.Status(http.StatusOK)
}
