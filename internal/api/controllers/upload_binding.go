package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inkstudio/internal/models/request_models"
	"inkstudio/internal/services"
	"inkstudio/pkg/utils"
)

const (
	multipartMemory = 32 << 20
	// maxUploadItems caps the images accepted in one request.
	maxUploadItems = 20
	// itemOverhead covers JSON keys, names and multipart headers per item.
	itemOverhead = 4 << 10
)

// uploadBodyLimit is the largest request body bindUpload reads. Data URLs
// carry base64, which is 4/3 of the raw size.
func uploadBodyLimit(maxBytes int64) int64 {
	return maxUploadItems * (maxBytes/3*4 + 4 + itemOverhead)
}

type uploadBody struct {
	Items    []services.UploadItem
	Comment  string
	ClientID string
}

// bindUpload accepts either a JSON body of data URLs or a multipart form with
// "images" file parts. Decoding failures are validation errors.
func bindUpload(c *gin.Context, maxBytes int64) (*uploadBody, error) {
	limit := uploadBodyLimit(maxBytes)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return bindMultipartUpload(c, maxBytes, limit)
	}

	var req request_models.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bodyError(err, limit, "invalid upload body")
	}
	if len(req.Images) > maxUploadItems {
		return nil, utils.Validationf("at most %d images per upload", maxUploadItems)
	}
	body := &uploadBody{Comment: req.Comment, ClientID: req.ClientID}
	for i, img := range req.Images {
		mime, data, err := utils.DecodeDataURL(img.Data)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		body.Items = append(body.Items, services.UploadItem{Name: img.Name, ContentType: mime, Data: data})
	}
	return body, nil
}

func bindMultipartUpload(c *gin.Context, maxBytes, limit int64) (*uploadBody, error) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		return nil, bodyError(err, limit, "invalid multipart body")
	}
	if len(c.Request.MultipartForm.File["images"]) > maxUploadItems {
		return nil, utils.Validationf("at most %d images per upload", maxUploadItems)
	}
	form := c.Request.MultipartForm
	body := &uploadBody{
		Comment:  c.Request.FormValue("comment"),
		ClientID: c.Request.FormValue("clientId"),
	}
	for _, fh := range form.File["images"] {
		data, err := readPart(fh, maxBytes)
		if err != nil {
			return nil, err
		}
		body.Items = append(body.Items, services.UploadItem{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	if len(body.Items) == 0 {
		return nil, utils.Validationf("no images in upload")
	}
	return body, nil
}

func bodyError(err error, limit int64, msg string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return utils.Validationf("upload body exceeds %d bytes", limit)
	}
	return utils.Validationf("%s", msg)
}

func readPart(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, utils.Validationf("unreadable file %q", fh.Filename)
	}
	defer f.Close()
	// One extra byte lets the service reject oversized parts.
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, utils.Validationf("unreadable file %q", fh.Filename)
	}
	return data, nil
}
