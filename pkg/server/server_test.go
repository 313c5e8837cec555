package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scribe/pkg/config"
	"scribe/pkg/render"
)

const dialogue = `[{"speaker":"Alice","sentence":"Hi","start_time":0.5},{"speaker":"Bob","sentence":"Hello","start_time":2}]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(&config.Config{
		MaxConcurrent:  2,
		RequestTimeout: 5 * time.Second,
		MaxBodyBytes:   1 << 20,
		DefaultLocale:  "en",
	}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/render", map[string]any{
		"transcription": json.RawMessage(dialogue),
		"view":          "shared",
		"mode":          "bubble",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var out RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "dialogue", string(out.State))
	require.Len(t, out.Speakers, 2)
	require.Equal(t, []render.Cue{{Row: 0, Start: 0.5}, {Row: 1, Start: 2}}, out.Cues)
	require.Contains(t, out.HTML, "speaker-legend")
}

func TestRenderStringTranscription(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/render", map[string]any{
		"transcription": `[{'speaker': 'Alice', 'sentence': 'Hi'}]`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "dialogue", string(out.State))
	require.Contains(t, out.HTML, "Alice")
}

func TestRenderEmptyStateUsesLocale(t *testing.T) {
	ts := newTestServer(t)

	b, err := json.Marshal(map[string]any{"transcription": nil})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/render", bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "empty", string(out.State))
	require.Contains(t, out.HTML, "Không có bản chép lời.")

	resp = post(t, ts.URL+"/render", map[string]any{"transcription": ""})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Contains(t, out.HTML, "No transcription available.")
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"unknown view", map[string]any{"transcription": dialogue, "view": "grid"}, http.StatusBadRequest},
		{"unknown mode", map[string]any{"transcription": dialogue, "mode": "cards"}, http.StatusBadRequest},
		{"strict malformed", map[string]any{"transcription": "not a list", "view": "strict"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/render", tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}

	t.Run("bad json", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/render")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, ts.URL+"/render", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	})
}

func TestRenderMalformedByView(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/render", map[string]any{"transcription": "just words", "view": "detail"})
	var out RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "empty", string(out.State))

	resp = post(t, ts.URL+"/render", map[string]any{"transcription": "just words", "view": "shared"})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "raw_text", string(out.State))
	require.Contains(t, out.HTML, "just words")
}

func TestBatch(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/render/batch", map[string]any{
		"items": []map[string]any{
			{"transcription": json.RawMessage(dialogue)},
			{"transcription": "broken", "view": "strict"},
			{"transcription": nil},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 3)
	require.Equal(t, "dialogue", string(out[0].State))
	require.Empty(t, out[0].Error)
	require.Contains(t, out[1].Error, "strict view")
	require.Equal(t, "empty", string(out[2].State))
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"transcription": json.RawMessage(dialogue)}

	resp := post(t, ts.URL+"/export", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "[Alice]: Hi\n[Bob]: Hello", readBody(t, resp))

	resp = post(t, ts.URL+"/export?format=vtt", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(readBody(t, resp), "WEBVTT"))

	resp = post(t, ts.URL+"/export?format=pdf", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.True(t, strings.HasPrefix(readBody(t, resp), "%PDF-"))

	resp = post(t, ts.URL+"/export?format=docx", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"markdown": `# Notes\n\n- one\n- two`, "title": "Weekly"}

	resp := post(t, ts.URL+"/summary", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := readBody(t, resp)
	require.Contains(t, html, "<h1>Notes</h1>")
	require.Contains(t, html, "<li>one</li>")

	resp = post(t, ts.URL+"/summary?format=pdf", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(readBody(t, resp), "%PDF-"))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", readBody(t, resp))
}
