package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- withTraceID ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
	}{
		{name: "trace id from request is reused", requestTraceID: "my-custom-trace-id"},
		{name: "trace id is generated", requestTraceID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.requestTraceID != "" {
				assert.Equal(t, tt.requestTraceID, got)
			} else {
				parsed, err := uuid.Parse(got)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(7), parsed.Version())
			}
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
		})
	}
}

// ---- withLogging ----

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/entities/c1/toggle", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, req)

	out := buf.String()
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"uri":"/api/entities/c1/toggle"`)
	assert.Contains(t, out, `"status":202`)
	assert.Contains(t, out, `"size":5`)
	assert.Contains(t, out, `"duration":`)
}

// ---- withActor ----

func TestWithActor(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		fallback  string
		wantActor string
		wantOK    bool
	}{
		{name: "header", header: "u-1", fallback: "default", wantActor: "u-1", wantOK: true},
		{name: "header is trimmed", header: "  u-2 ", wantActor: "u-2", wantOK: true},
		{name: "fallback", fallback: "default", wantActor: "default", wantOK: true},
		{name: "no actor", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{opts: Options{DefaultActorID: tt.fallback}, logger: logger.Nop()}

			var (
				gotActor string
				gotOK    bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotActor, gotOK = utils.GetActorIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set(actorIDHeader, tt.header)
			}
			h.withActor(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantOK, gotOK)
			assert.Equal(t, tt.wantActor, gotActor)
		})
	}
}

// ---- responseWriter ----

func TestResponseWriter(t *testing.T) {
	t.Run("first status wins", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusCreated, w.status)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("write implies 200 and sums sizes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		_, _ = w.Write([]byte("abc"))
		_, _ = w.Write([]byte("de"))

		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 5, w.size)
		assert.Equal(t, "abcde", rr.Body.String())
	})
}
