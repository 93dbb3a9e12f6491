package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

// UploadImage streams an image to the backend's upload endpoint and returns
// the public URL. Size/type limits are the backend's call; we only forward.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	var out struct {
		URL string `json:"imageUrl"`
	}
	if err := c.doMultipart(ctx, pathUploadImg, writer.FormDataContentType(), &body, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
