package common

import (
	"fmt"
	"net/http"
)

// Get performs a single request attempt. A failed fetch is terminal for
// the caller; any retry policy lives above this layer.
func Get(req *http.Request, name string) (*http.Response, error) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error on %v api request: %w", name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("error response from %v: %v", name, resp.Status)
	}
	return resp, nil
}
