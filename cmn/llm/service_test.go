package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func init() {
	// 包内直接构造 impl 测试，不走 Init()，只需要可用的 logger
	logger = zap.NewNop()
}

func newTestService() *deepSeekImpl {
	return &deepSeekImpl{
		client:       &http.Client{},
		backoffUnit:  time.Millisecond,
		networkDelay: time.Millisecond,
	}
}

func writeEnvelope(w http.ResponseWriter, content string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
}

func TestChatJSONBlankCredentials(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, "{}")
	}))
	defer srv.Close()

	cases := []struct {
		name    string
		apiKey  string
		baseUrl string
	}{
		{"empty key", "", srv.URL},
		{"whitespace key", "   \t", srv.URL},
		{"empty base url", "sk-test", ""},
		{"whitespace base url", "sk-test", "  \n "},
	}

	s := newTestService()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.ChatJSON(context.Background(), ChatParams{
				ApiKey:  tc.apiKey,
				BaseUrl: tc.baseUrl,
				Prompt:  "hi",
			})
			if err == nil {
				t.Fatal("expected configuration error, got nil")
			}
			if KindOf(err) != KindConfiguration {
				t.Fatalf("expected KindConfiguration, got %v (%v)", KindOf(err), err)
			}
		})
	}

	if hits.Load() != 0 {
		t.Fatalf("expected no network calls, server got %d", hits.Load())
	}
}

func TestChatJSONWireContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected Content-Type header %q", got)
		}

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
			Temperature float64 `json:"temperature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body.Model != DefaultModel {
			t.Errorf("expected default model %q, got %q", DefaultModel, body.Model)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Role != "user" {
			t.Errorf("unexpected messages %+v", body.Messages)
		}
		if body.Messages[0].Content != "system text" || body.Messages[1].Content != "user text" {
			t.Errorf("unexpected message contents %+v", body.Messages)
		}
		if body.ResponseFormat.Type != "json_object" {
			t.Errorf("unexpected response_format %q", body.ResponseFormat.Type)
		}
		if body.Temperature != 0.7 {
			t.Errorf("unexpected temperature %v", body.Temperature)
		}

		writeEnvelope(w, "pong")
	}))
	defer srv.Close()

	s := newTestService()
	// 结尾多个斜杠应被去除，否则路径断言会失败
	content, err := s.ChatJSON(context.Background(), ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: srv.URL + "///",
		System:  "system text",
		Prompt:  "user text",
	})
	if err != nil {
		t.Fatalf("ChatJSON failed: %v", err)
	}
	if content != "pong" {
		t.Fatalf("expected content %q, got %q", "pong", content)
	}
}

func TestChatJSONRetriesOn503ThenSucceeds(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		writeEnvelope(w, "final answer")
	}))
	defer srv.Close()

	s := newTestService()
	content, err := s.ChatJSON(context.Background(), ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: srv.URL,
		Prompt:  "hi",
	})
	if err != nil {
		t.Fatalf("ChatJSON failed: %v", err)
	}
	if content != "final answer" {
		t.Fatalf("expected final body content, got %q", content)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestChatJSONServiceUnavailableExhausted(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestService()
	_, err := s.ChatJSON(context.Background(), ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: srv.URL,
		Prompt:  "hi",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *llm.Error, got %T", err)
	}
	if lerr.Kind != KindServiceUnavailable {
		t.Fatalf("expected KindServiceUnavailable, got %v", lerr.Kind)
	}
	if lerr.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", lerr.Attempts)
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "3") {
		t.Fatalf("error message should mention 503 and attempt count, got %q", err.Error())
	}
	if !strings.Contains(lerr.Body, "upstream overloaded") {
		t.Fatalf("error should carry response body, got %q", lerr.Body)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestChatJSONFatalOnHTTPError(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	s := newTestService()
	_, err := s.ChatJSON(context.Background(), ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: srv.URL,
		Prompt:  "hi",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *llm.Error, got %T", err)
	}
	if lerr.Kind != KindHTTP {
		t.Fatalf("expected KindHTTP, got %v", lerr.Kind)
	}
	if lerr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", lerr.StatusCode)
	}
	if hits.Load() != 1 {
		t.Fatalf("403 must not be retried, server got %d requests", hits.Load())
	}
}

func TestChatJSONNetworkErrorRetries(t *testing.T) {
	// 先拿到一个地址再关掉服务，制造连接失败
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	s := newTestService()
	_, err := s.ChatJSON(context.Background(), ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: target,
		Prompt:  "hi",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *llm.Error, got %T", err)
	}
	if lerr.Kind != KindNetwork {
		t.Fatalf("expected KindNetwork, got %v", lerr.Kind)
	}
	if lerr.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", lerr.Attempts)
	}
}

func TestChatJSONEmptyResponse(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	s := newTestService()
	_, err := s.ChatJSON(context.Background(), ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: srv.URL,
		Prompt:  "hi",
	})
	if KindOf(err) != KindEmptyResponse {
		t.Fatalf("expected KindEmptyResponse, got %v (%v)", KindOf(err), err)
	}
	if hits.Load() != 1 {
		t.Fatalf("empty response must not be retried, server got %d requests", hits.Load())
	}
}

func TestChatJSONCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestService()
	s.backoffUnit = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.ChatJSON(ctx, ChatParams{
		ApiKey:  "sk-test",
		BaseUrl: srv.URL,
		Prompt:  "hi",
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded during backoff, got %v", err)
	}
}
