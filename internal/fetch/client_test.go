package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchReturnsBody(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	body, err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}
	if body != "<html>ok</html>" {
		t.Fatalf("body = %q", body)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestFetchAcceptsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	body, err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() err = %v, want body for 404", err)
	}
	if body != "gone\n" {
		t.Fatalf("body = %q", body)
	}
}

func TestFetchTransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	_, err = NewHTTPFetcher(nil).Fetch(context.Background(), "http://"+addr)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Fetch() err = %v, want *TransportError", err)
	}
	if IsTimeout(err) {
		t.Fatal("connection refused classified as timeout")
	}
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := NewHTTPFetcher(nil).Fetch(context.Background(), "")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Fetch(\"\") err = %v, want *TransportError", err)
	}
}

func TestFetchHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewHTTPFetcher(srv.Client()).Fetch(ctx, srv.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Fetch() err = %v, want deadline exceeded", err)
	}
}

func TestNewHTTPClientInsecureTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	defer srv.Close()

	insecure, err := NewHTTPClient(ClientConfig{InsecureSkipVerify: true})
	if err != nil {
		t.Fatal(err)
	}
	body, err := NewHTTPFetcher(insecure).Fetch(context.Background(), srv.URL)
	if err != nil || body != "secure" {
		t.Fatalf("insecure Fetch() = %q, %v", body, err)
	}

	strict, err := NewHTTPClient(ClientConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewHTTPFetcher(strict).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("verifying client accepted self-signed certificate")
	}
}

func TestNewHTTPClientInvalidProxy(t *testing.T) {
	if _, err := NewHTTPClient(ClientConfig{ProxyURL: "://bad"}); err == nil {
		t.Fatal("NewHTTPClient() expected error for invalid proxy")
	}
}

func TestTimeoutError(t *testing.T) {
	err := error(&TimeoutError{URL: "http://10.255.255.1", Timeout: 500 * time.Millisecond})
	if !IsTimeout(err) {
		t.Fatal("IsTimeout() = false")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("TimeoutError does not unwrap to context.DeadlineExceeded")
	}
	if IsTimeout(&TransportError{URL: "x", Err: errors.New("reset")}) {
		t.Fatal("TransportError classified as timeout")
	}
}
