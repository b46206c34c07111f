package utils

import (
	"encoding/base64"
	"strings"
)

// DecodeDataURL splits a "data:<mime>;base64,<payload>" string into its mime
// type and decoded bytes.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, Validationf("image data must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, Validationf("image data must be a data URL")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return "", nil, Validationf("image data must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, Validationf("image data is not valid base64")
	}
	return mime, data, nil
}
