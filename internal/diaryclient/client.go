// Package diaryclient talks to the diary endpoints of a running lifeboard
// API. It is used by the diaryupload command.
package diaryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/lifeboard/internal/netx"
	"github.com/dmitrijs2005/lifeboard/internal/server/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, c *http.Client) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: c}
}

// UploadImage asks the API for an upload ticket, PUTs data to object
// storage and registers the resulting link as an image entry.
func (c *Client) UploadImage(ctx context.Context, data []byte, contentType string) (*models.DiaryEntry, error) {
	var ticket models.UploadTicket
	if err := c.post(ctx, "/api/diaries/image-uploads", nil, &ticket); err != nil {
		return nil, fmt.Errorf("request upload: %w", err)
	}

	if err := netx.PutPresigned(ctx, c.http, ticket.UploadURL, data, contentType); err != nil {
		return nil, err
	}

	return c.AddImage(ctx, ticket.Link)
}

func (c *Client) AddImage(ctx context.Context, link string) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	if err := c.post(ctx, "/api/diaries/new-image", map[string]string{"link": link}, &entry); err != nil {
		return nil, fmt.Errorf("add image: %w", err)
	}
	return &entry, nil
}

func (c *Client) AddVideo(ctx context.Context, link string) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	if err := c.post(ctx, "/api/diaries/new-video", map[string]string{"link": link}, &entry); err != nil {
		return nil, fmt.Errorf("add video: %w", err)
	}
	return &entry, nil
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
