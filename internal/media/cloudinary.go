// internal/media/cloudinary.go
package media

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"turbo-admin/pkg/models"
)

const (
	// DefaultBaseURL is the Cloudinary API root.
	DefaultBaseURL = "https://api.cloudinary.com"

	uploadTimeout = 30 * time.Second
)

// Client is a thin wrapper over the Cloudinary upload API. Failures are
// contained here: Upload yields an empty URL and Destroy yields false, both
// logged, so a media host outage never surfaces as an error to callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: uploadTimeout},
	}
}

// NewClientWithBaseURL points the client at a different API root. Used in tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Upload sends the file to the media host under the given folder and returns
// the secure URL, or "" when the upload fails for any reason.
func (c *Client) Upload(ctx context.Context, cfg *models.CloudinaryConfiguration, file io.Reader, filename, folder string) string {
	if folder == "" {
		folder = cfg.DefaultFolder
	}

	params := map[string]string{
		"folder":    folder,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}
	if cfg.AutoOptimize {
		params["transformation"] = "q_auto:good,f_auto"
	}

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)
	for k, v := range params {
		_ = writer.WriteField(k, v)
	}
	_ = writer.WriteField("api_key", cfg.APIKey)
	_ = writer.WriteField("signature", signParams(params, cfg.APISecret))
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		log.Printf("❌ [MEDIA] Upload request build failed: %v", err)
		return ""
	}
	if _, err := io.Copy(part, file); err != nil {
		log.Printf("❌ [MEDIA] Reading upload file %q failed: %v", filename, err)
		return ""
	}
	if err := writer.Close(); err != nil {
		log.Printf("❌ [MEDIA] Upload request build failed: %v", err)
		return ""
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		log.Printf("❌ [MEDIA] Upload request build failed: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ [MEDIA] Upload of %q failed: %v", filename, err)
		return ""
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ [MEDIA] Upload of %q rejected (%d): %s", filename, resp.StatusCode, raw)
		return ""
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("❌ [MEDIA] Upload response for %q unreadable: %v", filename, err)
		return ""
	}
	log.Printf("✅ [MEDIA] Uploaded %q → %s", filename, result.SecureURL)
	return result.SecureURL
}

// Destroy removes the remote asset referenced by rawURL. The asset identifier
// is derived from the URL; URLs that do not carry an upload path segment are
// skipped as not applicable. Best effort: false is informational only.
func (c *Client) Destroy(ctx context.Context, cfg *models.CloudinaryConfiguration, rawURL string) bool {
	publicID, ok := PublicIDFromURL(rawURL)
	if !ok {
		log.Printf("⚠️ [MEDIA] Destroy skipped, unrecognized URL: %s", rawURL)
		return false
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", cfg.APIKey)
	form.Set("signature", signParams(params, cfg.APISecret))

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("❌ [MEDIA] Destroy request build failed: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ [MEDIA] Destroy of %q failed: %v", publicID, err)
		return false
	}
	defer resp.Body.Close()

	var result struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("❌ [MEDIA] Destroy response for %q unreadable: %v", publicID, err)
		return false
	}
	if result.Result != "ok" {
		log.Printf("⚠️ [MEDIA] Destroy of %q returned %q", publicID, result.Result)
		return false
	}
	log.Printf("✅ [MEDIA] Destroyed %q", publicID)
	return true
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL reconstructs the remote asset identifier from a delivery
// URL: everything after the "upload" path segment, minus a leading version
// segment and the file extension. The second return is false when the URL has
// no upload segment and deletion is not applicable.
func PublicIDFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx == len(segments)-1 {
		return "", false
	}
	rest := segments[uploadIdx+1:]
	if versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", false
	}
	publicID := strings.Join(rest, "/")
	if ext := path.Ext(publicID); ext != "" {
		publicID = strings.TrimSuffix(publicID, ext)
	}
	return publicID, true
}

// signParams builds the request signature: the sorted query-style parameter
// string with the API secret appended, hashed with SHA-1.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return fmt.Sprintf("%x", sum)
}
