// Package storage uploads file attachments to the content blob store over
// its signed REST API. Objects are keyed {entityID}/{randomToken}.{extension}
// inside the configured bucket; callers persist the returned path on the
// owning row, never the bytes.
package storage

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client uploads files to the blob store.
type Client struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Bucket    string
	HTTP      *http.Client
}

// New creates a storage client.
func New(baseURL, apiKey, apiSecret, bucket string) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Bucket:    bucket,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadResult holds the response from the blob store after a successful
// upload.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

// Upload stores the file under {entityID}/{token}.{ext} and returns the
// resulting path and URL.
func (c *Client) Upload(entityID uuid.UUID, filename string, data []byte) (*UploadResult, error) {
	ext := strings.ToLower(path.Ext(filename))
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	publicID := fmt.Sprintf("%s/%s/%s%s", c.Bucket, entityID, token, ext)

	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   c.APIKey,
		"public_id": publicID,
	}
	params["signature"] = c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("storage: create form file failed: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("storage: write file failed: %w", err)
	}
	w.Close()

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("storage: create request failed: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storage: upload failed (%d): %s", resp.StatusCode, string(body))
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("storage: decode response failed: %w", err)
	}
	if result.PublicID == "" {
		result.PublicID = publicID
	}
	return &result, nil
}

// sign computes the request signature. api_key and file are excluded from
// the signature.
func (c *Client) sign(params map[string]string) string {
	excludeKeys := map[string]bool{"api_key": true, "file": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excludeKeys[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	payload := strings.Join(pairs, "&") + c.APISecret
	h := sha1.New()
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
