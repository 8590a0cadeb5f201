package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// CreateRequestMultipart posts a request with an attached photo. The photo
// bytes go through untouched and no JSON content type is set.
func (c *Client) CreateRequestMultipart(ctx context.Context, req domain.NewRequest, photo *domain.Photo) (*domain.ServiceRequest, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"title", req.Title},
		{"description", req.Description},
		{"userInfo", req.UserInfo},
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		fields = append(fields, [2]string{"imageUrl", *req.ImageURL})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if photo != nil {
		contentType := photo.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="photo"; filename="%s"`, quoteEscaper.Replace(photo.Filename)))
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create photo part: %w", err)
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, fmt.Errorf("write photo part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", w.FormDataContentType())

	raw, err := c.send(ctx, "create_request_multipart", http.MethodPost, "/api/requests", &buf, headers)
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.ServiceRequest](raw)
}
