package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatReply(text string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, text)
}

func TestGenerateText(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chatReply("A Quiet Morning"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "test-model", "test-image", 0)
	defer client.Close()

	text, err := client.GenerateText(context.Background(), "title this")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "A Quiet Morning" {
		t.Errorf("got %q", text)
	}
	if gotModel != "test-model" {
		t.Errorf("sent model %q", gotModel)
	}
}

func TestGenerateTextRetriesRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chatReply("second try"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "m", "im", 2)
	defer client.Close()

	text, err := client.GenerateText(context.Background(), "p")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "second try" {
		t.Errorf("got %q", text)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}

func TestGenerateTextInvalidKeyDoesNotRetry(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", "m", "im", 3)
	defer client.Close()

	_, err := client.GenerateText(context.Background(), "p")
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("got %v, want ErrInvalidKey", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1", calls)
	}
}

func TestGenerateImageSizes(t *testing.T) {
	var gotSize string
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotSize = req.Size
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"b64_json":%q}]}`, base64.StdEncoding.EncodeToString(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "m", "im", 0)
	defer client.Close()

	for ratio, want := range map[string]string{
		"1:1": "1024x1024",
		"3:4": "1024x1536",
		"4:3": "1536x1024",
	} {
		image, err := client.GenerateImage(context.Background(), "paint it", ratio)
		if err != nil {
			t.Fatalf("GenerateImage(%s): %v", ratio, err)
		}
		if gotSize != want {
			t.Errorf("ratio %s sent size %q, want %q", ratio, gotSize, want)
		}
		if string(image) != string(payload) {
			t.Errorf("ratio %s returned wrong bytes", ratio)
		}
	}
}

func TestStatusError(t *testing.T) {
	if !errors.Is(statusError(429, ""), ErrRateLimited) {
		t.Error("429 should map to ErrRateLimited")
	}
	if !errors.Is(statusError(500, ""), ErrServer) {
		t.Error("500 should map to ErrServer")
	}
	if !errors.Is(statusError(403, ""), ErrInvalidKey) {
		t.Error("403 should map to ErrInvalidKey")
	}
	if isRetryable(statusError(400, "bad request")) {
		t.Error("400 should not be retried")
	}
}
