package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/layoutio"
	"github.com/jask/floorplan/internal/service"
)

// GenerateFromTextRequest is the body of generate-from-text.
type GenerateFromTextRequest struct {
	Description string `json:"description" validate:"required"`
}

func (s *Server) health(c echo.Context) error {
	return Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

func (s *Server) generateFromText(c echo.Context) error {
	var req GenerateFromTextRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid request body", err.Error())
	}
	req.Description = strings.TrimSpace(req.Description)
	if err := c.Validate(&req); err != nil {
		return BadRequest(c, "VALIDATION_ERROR", validationMessage(err), "")
	}

	s.logger.Info("generating layout from text", zap.String("description", preview(req.Description, 50)))
	res := s.gen.Generate(c.Request().Context(), service.GenerateRequest{Description: req.Description})
	return s.writeLayout(c, res)
}

func (s *Server) generateFromImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return BadRequest(c, "NO_IMAGE", "No image file provided", "")
	}
	if fh.Size > s.maxImageBytes {
		return Error(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "Image file too large", "")
	}
	f, err := fh.Open()
	if err != nil {
		return BadRequest(c, "INVALID_IMAGE", "Unreadable image file", err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.maxImageBytes+1))
	if err != nil {
		return BadRequest(c, "INVALID_IMAGE", "Unreadable image file", err.Error())
	}
	if int64(len(data)) > s.maxImageBytes {
		return Error(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "Image file too large", "")
	}
	if len(data) == 0 {
		return BadRequest(c, "NO_IMAGE", "No image file provided", "")
	}

	s.logger.Info("generating layout from image", zap.String("file", fh.Filename), zap.Int("bytes", len(data)))
	res := s.gen.Generate(c.Request().Context(), service.GenerateRequest{
		Image:    data,
		MimeType: fh.Header.Get(echo.HeaderContentType),
	})
	return s.writeLayout(c, res)
}

func (s *Server) writeLayout(c echo.Context, res service.GenerateResult) error {
	if res.Fallback {
		s.logger.Warn("generation failed, returning mock layout", zap.Error(res.Err))
	}
	if res.Layout == nil {
		return Error(c, http.StatusInternalServerError, "GENERATION_FAILED", "Layout generation failed", "")
	}
	return c.JSON(http.StatusOK, layoutio.FromLayout(res.Layout))
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
