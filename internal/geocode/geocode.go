// Package geocode resolves free-form locations to GeoJSON points through a
// Mapbox-style forward geocoding endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"campsite-service/internal/models"
)

type Client struct {
	endpoint   string
	token      string
	http       *http.Client
	maxElapsed time.Duration
}

func NewClient(endpoint, token string, timeout, retryMax time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		http:       &http.Client{Timeout: timeout},
		maxElapsed: retryMax,
	}
}

type featureCollection struct {
	Features []struct {
		Geometry models.Geometry `json:"geometry"`
	} `json:"features"`
}

// Forward geocodes query to a point. Transient upstream failures are
// retried with exponential backoff until the retry budget runs out.
func (c *Client) Forward(ctx context.Context, query string) (models.Geometry, error) {
	u := fmt.Sprintf("%s/%s.json?access_token=%s&limit=1",
		c.endpoint, url.PathEscape(query), url.QueryEscape(c.token))

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("geocoder upstream %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(fmt.Errorf("geocoder status %d", resp.StatusCode))
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return models.Geometry{}, err
	}

	var fc featureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return models.Geometry{}, err
	}
	if len(fc.Features) == 0 {
		return models.Geometry{}, fmt.Errorf("no match for %q", query)
	}
	return fc.Features[0].Geometry, nil
}
