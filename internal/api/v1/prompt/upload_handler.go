package prompt

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgMissingUploadFields = "Missing required fields: file and promptId"
	msgStorageFailed       = "Failed to upload file to storage"
	msgOutputUpdateFailed  = "Failed to update prompt with output information"
)

// multipart framing on top of the file itself
const formOverheadBytes = 1 << 20

// UploadOutput godoc
// @Summary Attach an output file to a prompt
// @Description Store a file produced with the prompt and record its public URL and MIME type on the prompt
// @Tags prompts
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Output file"
// @Param promptId formData string true "Prompt ID"
// @Success 200 {object} UploadOutputResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /prompts/upload [post]
func UploadOutput(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	maxBytes := cfg.UploadMaxBytes()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverheadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.AbortWithError(c, utils.Validation(fileTooLargeMessage(cfg)))
			return
		}
		utils.AbortWithError(c, utils.Validation(msgMissingUploadFields))
		return
	}
	promptID := strings.TrimSpace(c.PostForm("promptId"))
	if promptID == "" {
		utils.AbortWithError(c, utils.Validation(msgMissingUploadFields))
		return
	}
	if fileHeader.Size > maxBytes {
		utils.AbortWithError(c, utils.Validation(fileTooLargeMessage(cfg)))
		return
	}

	p, err := services.UploadOutput(c.Request.Context(), userID, promptID, outputFile(fileHeader))
	switch {
	case err == nil:
	case errors.Is(err, services.ErrPromptNotFound):
		utils.AbortWithError(c, utils.NotFound(msgPromptNotFound))
		return
	case errors.Is(err, services.ErrOutputUpdate):
		utils.AbortWithError(c, utils.Upstream(err, msgOutputUpdateFailed))
		return
	default:
		utils.AbortWithError(c, utils.Upstream(err, msgStorageFailed))
		return
	}

	c.JSON(http.StatusOK, UploadOutputResponse{
		Success:   true,
		OutputURL: *p.OutputURL,
	})
}

func fileTooLargeMessage(cfg *config.Config) string {
	return fmt.Sprintf("File exceeds the %d MB upload limit", cfg.UploadMaxSizeMB)
}

func outputFile(fh *multipart.FileHeader) services.OutputFile {
	return services.OutputFile{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
