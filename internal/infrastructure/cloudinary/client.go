// Package cloudinary uploads user images to Cloudinary's signed REST API.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/manzafir/manzafir-backend/internal/config"
)

const (
	defaultBaseURL = "https://api.cloudinary.com"
	uploadTimeout  = 30 * time.Second
)

// UploadResult is the subset of Cloudinary's upload response the API exposes.
type UploadResult struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

type Client struct {
	http      *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

func NewClient(cfg *config.CloudinaryConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(uploadTimeout),
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		now:       time.Now,
	}
}

// Upload stores the file under the given folder and returns its public URL.
// Filenames are preserved but deduplicated, so repeat uploads of the same
// file get distinct public IDs.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader, folder string) (*UploadResult, error) {
	params := map[string]string{
		"folder":          folder,
		"timestamp":       strconv.FormatInt(c.now().Unix(), 10),
		"unique_filename": "true",
		"use_filename":    "true",
	}

	form := map[string]string{
		"api_key":   c.apiKey,
		"signature": c.sign(params),
	}
	for k, v := range params {
		form[k] = v
	}

	var result UploadResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		SetFormData(form).
		SetResult(&result).
		Post(fmt.Sprintf("/v1_1/%s/auto/upload", c.cloudName))
	if err != nil {
		return nil, fmt.Errorf("cloudinary request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("cloudinary returned status %d", resp.StatusCode())
	}
	if result.URL == "" {
		return nil, fmt.Errorf("cloudinary returned no secure URL")
	}

	return &result, nil
}

// sign computes Cloudinary's request signature: SHA-1 over the sorted
// key=value params joined with '&', with the API secret appended.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
