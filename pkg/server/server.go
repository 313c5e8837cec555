package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"scribe/pkg/config"
	"scribe/pkg/pdf"
	"scribe/pkg/render"
	"scribe/pkg/transcript"
	"scribe/pkg/workers"
)

// Server renders recording transcripts over HTTP.
type Server struct {
	cfg   *config.Config
	theme *render.Theme
}

// New creates a server. A nil theme selects the built-in theme of each view.
func New(cfg *config.Config, theme *render.Theme) *Server {
	return &Server{cfg: cfg, theme: theme}
}

// Handler returns the routes of the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
	mux.HandleFunc("/render", withCors(s.renderHandler))
	mux.HandleFunc("/render/batch", withCors(s.batchHandler))
	mux.HandleFunc("/export", withCors(s.exportHandler))
	mux.HandleFunc("/summary", withCors(s.summaryHandler))
	return mux
}

func enableCors(w *http.ResponseWriter) {
	(*w).Header().Set("Access-Control-Allow-Origin", "*")
	(*w).Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	(*w).Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")
}

func withCors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enableCors(&w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		startTime := time.Now()
		log.Printf("=== NEW REQUEST === %s %s | From: %s", r.Method, r.URL.Path, r.RemoteAddr)
		defer func() {
			log.Printf("=== REQUEST COMPLETED IN %v ===", time.Since(startTime))
		}()
		next(w, r)
	}
}

// RenderRequest is the body of /render and /export. Transcription is the
// recording field as stored by the backend: null, a string or an array.
type RenderRequest struct {
	Transcription json.RawMessage `json:"transcription"`
	View          string          `json:"view"`
	Mode          string          `json:"mode"`
	Dark          bool            `json:"dark"`
	Title         string          `json:"title,omitempty"`
}

type RenderResponse struct {
	State    transcript.State      `json:"state"`
	HTML     string                `json:"html"`
	Cues     []render.Cue          `json:"cues"`
	Speakers transcript.SpeakerSet `json:"speakers"`
	Error    string                `json:"error,omitempty"`
}

type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var reqErr requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, transcript.ErrMalformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return requestError{fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}

func (s *Server) themeFor(p transcript.Profile) render.Theme {
	if s.theme != nil {
		return *s.theme
	}
	return render.ThemeFor(p)
}

// process classifies and parses the transcription of req under its view.
func (s *Server) process(req RenderRequest) (*transcript.Transcript, transcript.Profile, error) {
	profile, err := transcript.ProfileByName(req.View)
	if err != nil {
		return nil, transcript.Profile{}, requestError{err}
	}

	t, err := transcript.Process(transcript.FromJSON(req.Transcription), profile)
	if err != nil {
		return nil, profile, err
	}
	return t, profile, nil
}

func (s *Server) renderOne(req RenderRequest, locale string) (*RenderResponse, error) {
	t, profile, err := s.process(req)
	if err != nil {
		return nil, err
	}

	mode, err := render.ParseMode(req.Mode, profile)
	if err != nil {
		return nil, requestError{err}
	}

	doc, err := render.Render(t, s.themeFor(profile), render.Options{
		Mode:   mode,
		Dark:   req.Dark,
		Locale: locale,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("RENDER DONE | View: %s | Mode: %s | State: %s | Utterances: %d | Speakers: %d",
		profile.Name, mode, t.State, len(t.Utterances), len(t.Speakers))

	return &RenderResponse{
		State:    t.State,
		HTML:     string(doc.HTML),
		Cues:     doc.Cues,
		Speakers: t.Speakers,
	}, nil
}

func (s *Server) locale(r *http.Request) string {
	return render.MatchLocale(r.Header.Get("Accept-Language"), s.cfg.DefaultLocale)
}

func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		log.Printf("VALIDATION FAILED: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	resp, err := s.renderOne(req, s.locale(r))
	if err != nil {
		log.Printf("RENDER FAILED: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, resp)
}

type batchRequest struct {
	Items []RenderRequest `json:"items"`
}

func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decode(w, r, &req); err != nil {
		log.Printf("VALIDATION FAILED: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	locale := s.locale(r)
	results := workers.Process(ctx, req.Items, s.cfg.MaxConcurrent, func(_ context.Context, item RenderRequest) (*RenderResponse, error) {
		return s.renderOne(item, locale)
	})

	out := make([]RenderResponse, len(results))
	for i, res := range results {
		if res.Err != nil {
			out[i] = RenderResponse{Error: res.Err.Error()}
			continue
		}
		out[i] = *res.Value
	}
	writeJSON(w, out)
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "txt"
	}

	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	t, profile, err := s.process(req)
	if err != nil {
		log.Printf("EXPORT FAILED: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	log.Printf("EXPORT | Format: %s | View: %s | State: %s", format, profile.Name, t.State)

	switch format {
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, t.CopyText())
	case "dialogue":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, t.DialogueText())
	case "vtt":
		w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
		if err := t.WebVTT(w); err != nil {
			log.Printf("VTT EXPORT FAILED: %v", err)
		}
	case "pdf":
		var buf bytes.Buffer
		msgs := render.MessagesFor(s.locale(r))
		if err := pdf.TranscriptPDF(t, s.themeFor(profile), req.Title, msgs, &buf); err != nil {
			log.Printf("PDF CONVERSION FAILED: %v", err)
			http.Error(w, "PDF generation failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=transcript.pdf")
		w.Write(buf.Bytes())
	default:
		http.Error(w, fmt.Sprintf("Invalid format %q", format), http.StatusBadRequest)
	}
}

type summaryRequest struct {
	Markdown string `json:"markdown"`
	Title    string `json:"title"`
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := s.decode(w, r, &req); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, string(render.MarkdownHTML(req.Markdown)))
	case "pdf":
		var buf bytes.Buffer
		if err := pdf.MarkdownToPDF(req.Markdown, req.Title, &buf); err != nil {
			log.Printf("PDF CONVERSION FAILED: %v", err)
			http.Error(w, "PDF generation failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=summary.pdf")
		w.Write(buf.Bytes())
	default:
		http.Error(w, fmt.Sprintf("Invalid format %q", format), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RESPONSE ENCODE FAILED: %v", err)
	}
}
