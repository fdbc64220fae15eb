package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/portfoliohub/internal/uploads"
	"github.com/gin-gonic/gin"
)

type UploadMetrics interface {
	ObserveUpload(kind, result string)
}

type UploadsHandler struct {
	storage  uploads.Storage
	maxBytes int64
	metrics  UploadMetrics
}

func NewUploadsHandler(storage uploads.Storage, maxBytes int64, metrics UploadMetrics) *UploadsHandler {
	return &UploadsHandler{storage: storage, maxBytes: maxBytes, metrics: metrics}
}

func (h *UploadsHandler) Image(ctx *gin.Context) {
	h.upload(ctx, uploads.ImagePolicy)
}

func (h *UploadsHandler) Resume(ctx *gin.Context) {
	h.upload(ctx, uploads.ResumePolicy)
}

func (h *UploadsHandler) upload(ctx *gin.Context, policy uploads.Policy) {
	fh, err := ctx.FormFile(policy.Field)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.reject(ctx, policy, "too_large", "payload_too_large", "File exceeds the upload size limit")
			return
		}
		h.reject(ctx, policy, "missing", "invalid_request", "No file uploaded in field \""+policy.Field+"\"")
		return
	}

	accepted, err := policy.Check(fh, h.maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrTooLarge):
			h.reject(ctx, policy, "too_large", "payload_too_large", "File exceeds the upload size limit")
		case errors.Is(err, uploads.ErrUnsupportedType):
			h.reject(ctx, policy, "bad_type", "invalid_file_type", unsupportedMessage(policy))
		default:
			h.observe(policy, "error")
			RespondInternal(ctx, "uploads.check", err)
		}
		return
	}

	f, err := accepted.Open()
	if err != nil {
		h.observe(policy, "error")
		RespondInternal(ctx, "uploads.open", err)
		return
	}
	defer f.Close()

	if err := h.storage.Save(ctx.Request.Context(), accepted.Name, f, accepted.Size, accepted.ContentType); err != nil {
		h.observe(policy, "error")
		RespondInternal(ctx, "uploads.save", err)
		return
	}

	h.observe(policy, "ok")
	ctx.JSON(http.StatusOK, gin.H{"url": uploads.URL(accepted.Name)})
}

// Serve streams a stored file by its generated name.
func (h *UploadsHandler) Serve(ctx *gin.Context) {
	name := ctx.Param("filename")
	if !uploads.ValidName(name) {
		RespondBadRequest(ctx, "Invalid file name")
		return
	}

	rc, info, err := h.storage.Open(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, uploads.ErrNotExist) {
			RespondNotFound(ctx, "File not found")
			return
		}
		RespondInternal(ctx, "uploads.serve", err)
		return
	}
	defer rc.Close()

	ct := info.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	ctx.Header("Cache-Control", "public, max-age=86400")
	if !info.ModTime.IsZero() {
		ctx.Header("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))
	}
	ctx.DataFromReader(http.StatusOK, info.Size, ct, rc, map[string]string{
		"X-Content-Type-Options": "nosniff",
	})
}

func (h *UploadsHandler) reject(ctx *gin.Context, policy uploads.Policy, result, code, message string) {
	h.observe(policy, result)
	RespondError(ctx, http.StatusBadRequest, code, message, nil)
}

func (h *UploadsHandler) observe(policy uploads.Policy, result string) {
	if h.metrics != nil {
		h.metrics.ObserveUpload(policy.Kind, result)
	}
}

func unsupportedMessage(policy uploads.Policy) string {
	if policy.Kind == uploads.ResumePolicy.Kind {
		return "Only PDF files are allowed"
	}
	return "Only JPEG, PNG and GIF images are allowed"
}
