package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDeliver_SignsPayload(t *testing.T) {
	const secret = "test-secret"

	var gotSig, gotUA string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-LPR-Signature")
		gotUA = r.Header.Get("User-Agent")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	event := &Event{
		Type:      EventAnalysisCompleted,
		URL:       "https://example.com",
		Timestamp: time.Now().Unix(),
		Data:      map[string]int{"overall_score": 85},
	}
	if err := Deliver(context.Background(), srv.URL, secret, 5*time.Second, event); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}
	if gotUA != "LPR-Webhook/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}

	var decoded Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.Type != EventAnalysisCompleted || decoded.URL != "https://example.com" {
		t.Errorf("payload round-trip mismatch: %+v", decoded)
	}
}

func TestDeliver_NoSecretNoSignature(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-LPR-Signature")
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", 5*time.Second, &Event{Type: EventAnalysisFailed}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if gotSig != "" {
		t.Errorf("unexpected signature without a secret: %q", gotSig)
	}
}

func TestDeliver_HonorsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	err := Deliver(context.Background(), srv.URL, "", 50*time.Millisecond, &Event{Type: EventAnalysisCompleted})
	if err == nil {
		t.Error("delivery slower than the configured timeout should fail")
	}
}

func TestDeliver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", 5*time.Second, &Event{Type: EventAnalysisFailed}); err == nil {
		t.Error("5xx endpoint response should surface as an error")
	}
}
