package controllers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkstudio/pkg/utils"
)

func uploadContext(t *testing.T, body interface{}) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func pngDataURL(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestBindUpload_DecodesDataURLs(t *testing.T) {
	c := uploadContext(t, gin.H{"comment": "hi", "images": []gin.H{{"name": "a.png", "data": pngDataURL([]byte("abc"))}}})
	body, err := bindUpload(c, 1024)
	require.NoError(t, err)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "image/png", body.Items[0].ContentType)
	assert.Equal(t, []byte("abc"), body.Items[0].Data)
	assert.Equal(t, "hi", body.Comment)
}

func TestBindUpload_StopsReadingOversizedBody(t *testing.T) {
	const maxBytes = 64
	huge := bytes.Repeat([]byte("x"), int(uploadBodyLimit(maxBytes)))
	c := uploadContext(t, gin.H{"images": []gin.H{{"data": pngDataURL(huge)}}})

	_, err := bindUpload(c, maxBytes)
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.True(t, strings.Contains(err.Error(), "exceeds"), err.Error())
}

func TestBindUpload_CapsItemCount(t *testing.T) {
	images := make([]gin.H, maxUploadItems+1)
	for i := range images {
		images[i] = gin.H{"data": pngDataURL([]byte("x"))}
	}
	c := uploadContext(t, gin.H{"images": images})

	_, err := bindUpload(c, 1024)
	assert.ErrorIs(t, err, utils.ErrValidation)
}
