package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohit196/Text-Analytics/internal/batch"
	"github.com/rohit196/Text-Analytics/internal/entities"
	"github.com/rohit196/Text-Analytics/internal/render"
)

type ConvertController struct {
	opts batch.Options
}

func NewConvertController(opts batch.Options) *ConvertController {
	return &ConvertController{opts: opts}
}

type ConvertErrorResponse struct {
	Success bool   `json:"success"`
	Class   string `json:"class,omitempty"`
	Error   string `json:"error"`
}

// Convert accepts a multipart CSV upload and returns the rendered
// document inline. PDF is not offered over HTTP; callers wanting PDF use
// the CLI where a browser is available.
func (c *ConvertController) Convert(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("csv_file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ConvertErrorResponse{
			Error: "No CSV file provided",
		})
		return
	}
	defer file.Close()

	format := c.opts.Format
	if requested := ctx.Query("format"); requested != "" {
		format, err = render.ParseFormat(requested)
		if err != nil || format == render.FormatPDF {
			ctx.JSON(http.StatusBadRequest, ConvertErrorResponse{
				Error: fmt.Sprintf("unsupported format: %s", requested),
			})
			return
		}
	}

	renderer, err := render.New(format, c.opts.Style)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ConvertErrorResponse{
			Class: batch.ErrorClass(err),
			Error: err.Error(),
		})
		return
	}

	books, _, _, err := batch.LoadBooks(file, header.Filename, c.opts)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ConvertErrorResponse{
			Class: batch.ErrorClass(err),
			Error: err.Error(),
		})
		return
	}

	body, err := renderer.Render(books)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ConvertErrorResponse{
			Class: batch.ErrorClass(err),
			Error: err.Error(),
		})
		return
	}

	ctx.Header("X-Books", fmt.Sprintf("%d", len(books)))
	ctx.Header("X-Highlights", fmt.Sprintf("%d", entities.HighlightCount(books)))

	contentType := "text/markdown; charset=utf-8"
	if format == render.FormatHTML {
		contentType = "text/html; charset=utf-8"
	}
	ctx.Data(http.StatusOK, contentType, []byte(body))
}
