package filex

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ReadImage reads at most maxSize bytes of the file at path and returns them
// with the sniffed content type. Non-image files are rejected.
func ReadImage(path string, maxSize int64) (string, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%s is empty", path)
	}
	if int64(len(data)) > maxSize {
		return "", nil, fmt.Errorf("%s is larger than %d bytes", path, maxSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("%s is not an image (%s)", path, contentType)
	}

	return contentType, data, nil
}
