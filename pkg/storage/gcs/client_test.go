package gcs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"github.com/vishal-24-1/demodashboard/pkg/config"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func testClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	client, err := newClient(context.Background(), config.GCSConfig{BucketName: "bucket"},
		option.WithHTTPClient(&http.Client{Transport: fn}))
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	return client
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestReadObjectSuccess(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(req *http.Request) *http.Response {
		if req.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", req.Method)
		}
		if req.URL.Query().Get("alt") != "media" {
			t.Fatalf("expected media download, got %s", req.URL.String())
		}
		if !strings.Contains(req.URL.String(), "/b/bucket/o/") {
			t.Fatalf("unexpected url %s", req.URL.String())
		}
		return response(http.StatusOK, `[{"Product ID":"P1"}]`)
	})

	body, err := client.ReadObject(context.Background(), "", "exports/sales.json")
	if err != nil {
		t.Fatalf("ReadObject: %v", err)
	}
	if string(body) != `[{"Product ID":"P1"}]` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestReadObjectNotFound(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(*http.Request) *http.Response {
		return response(http.StatusNotFound, `{"error":{"code":404,"message":"No such object"}}`)
	})

	_, err := client.ReadObject(context.Background(), "bucket", "missing.csv")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestReadObjectRequiresName(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(*http.Request) *http.Response {
		t.Fatal("no request expected")
		return nil
	})
	if _, err := client.ReadObject(context.Background(), "", " "); err == nil {
		t.Fatal("expected error for empty object name")
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(req *http.Request) *http.Response {
		if req.URL.Query().Get("maxResults") != "1" {
			t.Fatalf("expected maxResults=1, got %s", req.URL.RawQuery)
		}
		return response(http.StatusOK, `{"kind":"storage#objects"}`)
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	failing := testClient(t, func(*http.Request) *http.Response {
		return response(http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`)
	})
	if err := failing.Ping(context.Background()); err == nil {
		t.Fatal("expected ping failure")
	}
}

func TestNewClientRequiresBucket(t *testing.T) {
	t.Parallel()

	if _, err := newClient(context.Background(), config.GCSConfig{}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
