// Package facebook lee publicaciones de una página vía Meta Graph API.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/application/usecase"
)

var _ usecase.PostSource = (*PageClient)(nil)

const (
	graphAPIBaseURL = "https://graph.facebook.com"
	postFields      = "message,created_time,full_picture,permalink_url"
	// Graph API devuelve created_time sin ':' en el offset.
	graphTimeLayout = "2006-01-02T15:04:05-0700"
)

// PageClient consulta /{page-id}/posts con un page access token.
type PageClient struct {
	pageID     string
	token      string
	apiVersion string
	baseURL    string
	httpClient *http.Client
}

// NewPageClient construye el cliente. timeout cero usa 10s.
func NewPageClient(pageID, token, apiVersion string, timeout time.Duration) *PageClient {
	if apiVersion == "" {
		apiVersion = "v22.0"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PageClient{
		pageID:     pageID,
		token:      token,
		apiVersion: apiVersion,
		baseURL:    graphAPIBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type postsPage struct {
	Data []struct {
		ID           string `json:"id"`
		Message      string `json:"message"`
		CreatedTime  string `json:"created_time"`
		FullPicture  string `json:"full_picture"`
		PermalinkURL string `json:"permalink_url"`
	} `json:"data"`
}

type graphError struct {
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Posts primera página de publicaciones, la más reciente primero.
func (p *PageClient) Posts(ctx context.Context) ([]dto.SocialPost, error) {
	if p.pageID == "" || p.token == "" {
		return nil, fmt.Errorf("facebook: credenciales incompletas")
	}
	endpoint := fmt.Sprintf("%s/%s/%s/posts?%s", p.baseURL, p.apiVersion, url.PathEscape(p.pageID),
		url.Values{"fields": {postFields}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("facebook: construir request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook: consultar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr graphError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != nil {
			return nil, fmt.Errorf("facebook: HTTP %d (code %d): %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("facebook: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var page postsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("facebook: decodificar: %w", err)
	}
	out := make([]dto.SocialPost, 0, len(page.Data))
	for _, d := range page.Data {
		post := dto.SocialPost{
			ID:           d.ID,
			Message:      d.Message,
			PictureURL:   d.FullPicture,
			PermalinkURL: d.PermalinkURL,
		}
		if t, err := time.Parse(graphTimeLayout, d.CreatedTime); err == nil {
			post.CreatedAt = t.UTC()
		}
		out = append(out, post)
	}
	return out, nil
}
