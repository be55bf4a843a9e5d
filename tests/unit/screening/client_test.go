package screening_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"civicfix/internal/config"
	"civicfix/internal/domain"
	"civicfix/internal/port"
	"civicfix/internal/screening"
)

func newTestClient(baseURL string) *screening.Client {
	return screening.NewClient(config.ScreeningConfig{BaseURL: baseURL, TimeoutSecs: 2})
}

func TestClient_ScoreDocument_Success(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/screen-officer", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		resp := map[string]interface{}{"score": 0.91, "result": "approved", "reason": "department letterhead matches"}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	verdict, err := newTestClient(srv.URL).ScoreDocument(context.Background(), port.ScoreInput{
		Text:        "Office of the Municipal Commissioner",
		Department:  "Sanitation",
		Designation: "Field Inspector",
		DocumentURL: "https://bucket/doc.pdf",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.91, verdict.Score)
	assert.Equal(t, domain.VerdictApproved, verdict.Result)
	assert.Equal(t, "Sanitation", gotBody["department"])
	assert.Equal(t, "https://bucket/doc.pdf", gotBody["document_url"])
}

func TestClient_ScoreDocument_UnknownResultFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"score": 0.99, "result": "totally_fine"})
	}))
	defer srv.Close()

	verdict, err := newTestClient(srv.URL).ScoreDocument(context.Background(), port.ScoreInput{Text: "x"})

	assert.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, verdict.Result)
}

func TestClient_ScoreDocument_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ScoreDocument(context.Background(), port.ScoreInput{Text: "x"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_ScoreDocument_TimeoutIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"score": 1.0, "result": "approved"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ScoreDocument(ctx, port.ScoreInput{Text: "x"})
	assert.Error(t, err)
}

func TestClient_AnalyzeIssue_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"category":      "Pothole",
			"ai_status":     "Verified",
			"ai_confidence": 0.87,
			"ai_reason":     "visible road damage",
		})
	}))
	defer srv.Close()

	analysis, err := newTestClient(srv.URL).AnalyzeIssue(context.Background(), port.AnalyzeInput{
		ImageBase64: "aGVsbG8=",
		Text:        "pothole on main road",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Pothole", analysis.Category)
	assert.Equal(t, "Verified", analysis.Status)
	assert.Equal(t, 0.87, analysis.Confidence)
}

func TestClient_AnalyzeIssue_ConnectionRefused(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.AnalyzeIssue(context.Background(), port.AnalyzeInput{Text: "x"})
	assert.Error(t, err)
}
