package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/youruser/creativestudio/internal/compliance"
	"github.com/youruser/creativestudio/internal/creative"
	imagepkg "github.com/youruser/creativestudio/internal/image"
	"github.com/youruser/creativestudio/internal/pipeline"
	"github.com/youruser/creativestudio/internal/placement"
)

const (
	maxBatch        = 20
	defaultCurrency = "£"
)

type Handler struct {
	pipeline  *pipeline.Pipeline
	maxUpload int64
	log       zerolog.Logger
}

// NewHandler serves renders through p. maxUpload caps each uploaded file in
// bytes.
func NewHandler(p *pipeline.Pipeline, maxUpload int64, log zerolog.Logger) *Handler {
	return &Handler{pipeline: p, maxUpload: maxUpload, log: log}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func presetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": placement.All()})
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

type complianceRequest struct {
	Slogan   string `json:"slogan"`
	Platform string `json:"platform" binding:"required,platform"`
}

func (h *Handler) complianceHandler(c *gin.Context) {
	var req complianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.pipeline.Check(req.Slogan, req.Platform))
}

type creativeForm struct {
	Platform   string   `form:"platform" binding:"required,platform"`
	Currency   string   `form:"currency" binding:"omitempty,currency"`
	Price      string   `form:"price" binding:"max=16"`
	Background string   `form:"background" binding:"max=64"`
	Slogan     string   `form:"slogan" binding:"max=140"`
	QRText     string   `form:"qr_text" binding:"max=512"`
	ImageURLs  []string `form:"image_urls" binding:"omitempty,max=20,dive,url"`
}

func (f creativeForm) request() creative.Request {
	currency := f.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return creative.Request{
		BackgroundStyle: f.Background,
		Slogan:          f.Slogan,
		Platform:        placement.MustLookup(f.Platform),
		Currency:        currency,
		Price:           f.Price,
		QRText:          f.QRText,
	}
}

type resultView struct {
	Index      int                `json:"index"`
	Source     string             `json:"source"`
	Filename   string             `json:"filename"`
	Verdict    compliance.Verdict `json:"verdict"`
	Exportable bool               `json:"exportable"`
	ExportKey  string             `json:"export_key,omitempty"`
	Preview    string             `json:"preview,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func newResultView(r pipeline.Result, preview bool) resultView {
	v := resultView{
		Index:      r.Index,
		Source:     r.Source,
		Filename:   r.Filename,
		Verdict:    r.Verdict,
		Exportable: r.Exportable(),
		ExportKey:  r.ExportKey,
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	if preview && len(r.JPEG) > 0 {
		v.Preview = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(r.JPEG)
	}
	return v
}

func views(results []pipeline.Result, preview bool) []resultView {
	out := make([]resultView, 0, len(results))
	for _, r := range results {
		out = append(out, newResultView(r, preview))
	}
	return out
}

// bindCreatives parses the shared form and collects uploads and URLs in
// submission order: files first, then URLs.
func (h *Handler) bindCreatives(c *gin.Context) (creativeForm, []pipeline.Input, error) {
	var form creativeForm
	if err := c.ShouldBind(&form); err != nil {
		return form, nil, err
	}
	var files []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil {
		files = mf.File["files"]
	}
	if len(files)+len(form.ImageURLs) == 0 {
		return form, nil, errors.New("at least one file or image_url is required")
	}
	if len(files)+len(form.ImageURLs) > maxBatch {
		return form, nil, fmt.Errorf("at most %d images per request", maxBatch)
	}
	inputs := make([]pipeline.Input, 0, len(files)+len(form.ImageURLs))
	for _, fh := range files {
		data, err := h.readUpload(fh)
		if err != nil {
			return form, nil, err
		}
		inputs = append(inputs, pipeline.Input{Source: fh.Filename, Data: data})
	}
	for _, u := range form.ImageURLs {
		inputs = append(inputs, pipeline.Input{URL: u})
	}
	return form, inputs, nil
}

func (h *Handler) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return nil, fmt.Errorf("%s exceeds the %d byte upload limit", fh.Filename, h.maxUpload)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) creativesHandler(c *gin.Context) {
	form, inputs, err := h.bindCreatives(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	batchID := uuid.NewString()
	results := h.pipeline.RenderBatch(ctx, inputs, form.request())
	results = h.pipeline.Publish(ctx, batchID, results)
	h.log.Info().Str("batch_id", batchID).Int("images", len(inputs)).Str("platform", form.Platform).Msg("batch rendered")

	c.JSON(http.StatusOK, gin.H{
		"batch_id": batchID,
		"platform": form.Platform,
		"results":  views(results, true),
	})
}

func (h *Handler) archiveHandler(c *gin.Context) {
	form, inputs, err := h.bindCreatives(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	batchID := uuid.NewString()
	results := h.pipeline.RenderBatch(c.Request.Context(), inputs, form.request())
	data, err := h.pipeline.Archive(batchID, form.Platform, results)
	if errors.Is(err, pipeline.ErrExportBlocked) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"batch_id": batchID,
			"results":  views(results, false),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="tesco_%s.zip"`, batchID))
	c.Data(http.StatusOK, "application/zip", data)
}
