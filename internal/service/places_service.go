package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	errorvalues "github.com/Kwazyyy/whereto-sub001/internal/error_values"
)

const photoEndpoint = "https://maps.googleapis.com/maps/api/place/photo"

// PlacesService resolves photo references against the Google Places photo
// API. The upstream answers a redirect to the hosted image; the redirect
// target is what clients get, so the API key never leaves the server.
type PlacesService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewPlacesService(apiKey string) *PlacesService {
	return NewPlacesServiceWithEndpoint(apiKey, photoEndpoint)
}

func NewPlacesServiceWithEndpoint(apiKey, endpoint string) *PlacesService {
	return &PlacesService{
		apiKey:   apiKey,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (ps *PlacesService) ResolvePhotoURL(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", errorvalues.ErrInvalidPhotoRef
	}
	query := url.Values{}
	query.Set("maxwidth", "800")
	query.Set("photo_reference", ref)
	query.Set("key", ps.apiKey)
	endpoint := ps.endpoint + "?" + query.Encode()

	var photoURL string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(errors.New("building photo request error: " + err.Error()))
		}
		resp, err := ps.client.Do(req)
		if err != nil {
			return errors.New("photo request error: " + err.Error())
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		switch {
		case resp.StatusCode >= 300 && resp.StatusCode < 400:
			location := resp.Header.Get("Location")
			if location == "" {
				return backoff.Permanent(&errorvalues.UpstreamError{Status: resp.StatusCode})
			}
			photoURL = location
			return nil
		case resp.StatusCode >= 500:
			// Retryable
			return &errorvalues.UpstreamError{Status: resp.StatusCode}
		default:
			return backoff.Permanent(&errorvalues.UpstreamError{Status: resp.StatusCode})
		}
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return photoURL, nil
}
