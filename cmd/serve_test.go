package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestServeMux_Health(t *testing.T) {
	mux := newServeMux(newTestStore(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServeMux_CreateRun_MissingInputs(t *testing.T) {
	mux := newServeMux(newTestStore(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(`{}`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeMux_CreateRun_BadBody(t *testing.T) {
	mux := newServeMux(newTestStore(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(`not json`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeMux_GetRun_NotFound(t *testing.T) {
	mux := newServeMux(newTestStore(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeMux_Report_NoResult(t *testing.T) {
	st := newTestStore(t)
	run, err := st.CreateRun(context.Background(), model.RunInput{SurveyFile: "s.json"})
	require.NoError(t, err)

	mux := newServeMux(st)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/report", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServeMux_ReportAndGeoJSON(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	run, err := st.CreateRun(ctx, model.RunInput{SurveyFile: "s.json"})
	require.NoError(t, err)

	result := &model.RunResult{
		Poles: []model.PoleRecord{{Number: "410620", Action: model.ActionExisting}},
		Geo: []model.GeoPoint{{
			Pole: "410620", Status: "No Change", Latitude: 29.42, Longitude: -98.49,
		}},
	}
	require.NoError(t, st.UpdateRunResult(ctx, run.ID, result))

	rec := httptest.NewRecorder()
	mux := newServeMux(st)
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/report", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.ID+"/geojson", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)
}

func TestServeMux_ListRuns(t *testing.T) {
	st := newTestStore(t)
	_, err := st.CreateRun(context.Background(), model.RunInput{SurveyFile: "s.json"})
	require.NoError(t, err)

	mux := newServeMux(st)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "s.json")
}
