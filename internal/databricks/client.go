// Package databricks is a minimal client for the Databricks workspace API,
// covering what is needed to read, write, and list source-format notebooks.
package databricks

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrUnsupportedFormat is returned when exporting a notebook that is not
	// Python source. Only Python notebooks use the format this tool understands.
	ErrUnsupportedFormat = errors.New("not a Python notebook")

	// ErrNotFound is returned for workspace paths that do not exist.
	ErrNotFound = errors.New("workspace path not found")
)

// ObjectType describes an entry returned by List.
type ObjectType string

const (
	ObjectNotebook  ObjectType = "NOTEBOOK"
	ObjectDirectory ObjectType = "DIRECTORY"
	ObjectRepo      ObjectType = "REPO"
)

// ObjectInfo is one entry of a workspace listing.
type ObjectInfo struct {
	Path       string     `json:"path"`
	ObjectType ObjectType `json:"object_type"`
	Language   string     `json:"language"`
}

// Client talks to one Databricks workspace.
type Client struct {
	host       string
	token      string
	username   string
	httpClient *http.Client
}

// NewClient returns a client for the given host URL, authenticating with the
// given personal access token.
func NewClient(profile Profile) *Client {
	return &Client{
		host:     strings.TrimRight(profile.Host, "/"),
		token:    profile.Token,
		username: profile.Username,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ResolvePath makes a workspace path absolute. Relative paths are interpreted
// under the profile user's home folder.
func (c *Client) ResolvePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/Users/" + c.username + "/" + path
}

type exportResponse struct {
	Content  string `json:"content"`
	FileType string `json:"file_type"`
}

// Export reads a notebook in SOURCE format and returns its decoded content.
// Non-Python notebooks fail with ErrUnsupportedFormat.
func (c *Client) Export(path string) (string, error) {
	query := url.Values{}
	query.Set("path", path)
	query.Set("format", "SOURCE")

	body, err := c.get("/api/2.0/workspace/export", query)
	if err != nil {
		return "", err
	}

	var response exportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decoding export response: %w", err)
	}
	if response.FileType != "py" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	content, err := base64.StdEncoding.DecodeString(response.Content)
	if err != nil {
		return "", fmt.Errorf("decoding notebook content: %w", err)
	}
	return string(content), nil
}

// Import overwrites a notebook with new Python source content.
func (c *Client) Import(path string, content string) error {
	payload := map[string]any{
		"path":      path,
		"format":    "SOURCE",
		"language":  "PYTHON",
		"content":   base64.StdEncoding.EncodeToString([]byte(content)),
		"overwrite": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.post("/api/2.0/workspace/import", body)
}

type listResponse struct {
	Objects []ObjectInfo `json:"objects"`
}

// List returns the entries under a workspace path.
func (c *Client) List(path string) ([]ObjectInfo, error) {
	query := url.Values{}
	query.Set("path", path)

	body, err := c.get("/api/2.0/workspace/list", query)
	if err != nil {
		return nil, err
	}

	var response listResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}
	return response.Objects, nil
}

func (c *Client) get(endpoint string, query url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.host+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(endpoint string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, c.host+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Databricks API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("Databricks API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
