package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const dataURIMarker = ";base64,"

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, dataURIMarker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode extracts and decodes the payload of a base64 data URI.
func Decode(file string) ([]byte, error) {
	idx := strings.Index(file, dataURIMarker)
	if idx == -1 {
		return nil, ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(file[idx+len(dataURIMarker):])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}

	return data, nil
}
