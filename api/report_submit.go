package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"scamwatch/security-api/model"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const keyCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func (a *API) ReportSubmit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Expected a multipart form",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid multipart form",
		})

		zap.L().Debug("Failed to parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sub := model.ReportSubmission{
		ReportID:    c.PostForm("reportId"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
		Severity:    c.PostForm("severity"),
		Phone:       c.PostForm("phone"),
		Email:       c.PostForm("email"),
		Website:     c.PostForm("website"),
	}

	var missing []string
	for field, value := range map[string]string{
		"title":       sub.Title,
		"description": sub.Description,
		"type":        sub.Type,
		"severity":    sub.Severity,
		"date":        c.PostForm("date"),
	} {
		if value == "" {
			missing = append(missing, field+" is required")
		}
	}

	if len(missing) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  strings.Join(missing, ", "),
		})
		return
	}

	sub.Date, err = parseReportDate(c.PostForm("date"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error",
			"errors":  "date must be an RFC 3339 timestamp or YYYY-MM-DD",
		})
		return
	}

	screenshots, err := a.storeFiles(c, form.File["screenshots"])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to store screenshots", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	sub.ScreenshotPaths = screenshots

	documents, err := a.storeFiles(c, form.File["documents"])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to store documents", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	sub.DocumentPaths = documents

	// Clients may also pass already-uploaded paths as JSON arrays.
	// A malformed list is logged and skipped, it never sinks the
	// whole submission
	sub.ScreenshotPaths = append(sub.ScreenshotPaths, parsePathList(c.PostForm("screenshotPaths"), "screenshotPaths", requestID)...)
	sub.DocumentPaths = append(sub.DocumentPaths, parsePathList(c.PostForm("documentPaths"), "documentPaths", requestID)...)

	report, created, err := a.Reports.Submit(c.Request.Context(), sub)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})

		zap.L().Error("Failed to submit report", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	status := http.StatusOK
	message := "Report updated successfully"
	if created {
		status = http.StatusCreated
		message = "Report submitted successfully"
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    report,
	})
}

func (a *API) storeFiles(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	var paths []string

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		key, err := gonanoid.Generate(keyCharset, 16)
		if err != nil {
			f.Close()
			return nil, err
		}

		stored, err := a.Uploads.Save(c.Request.Context(), key+path.Ext(fh.Filename), f, fh.Size)
		f.Close()
		if err != nil {
			return nil, err
		}

		paths = append(paths, stored)
	}

	return paths, nil
}

func parsePathList(raw, field, requestID string) []string {
	if raw == "" {
		return nil
	}

	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		zap.L().Warn("Ignoring malformed path list",
			zap.String("field", field),
			zap.Error(err),
			zap.String("requestID", requestID),
		)
		return nil
	}

	return paths
}

func parseReportDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", raw)
}
