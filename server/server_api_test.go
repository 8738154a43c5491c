// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mgirard/annuaire/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ameliPayload = "ps_activite_nom;ps_activite_prenom;ps_activite_civilite;coordonnees_ville;coordonnees_code_postal;specialite_libelle;Libellé du département\n" +
	"Dupont;Marie;MME;Paris;75001;Médecin généraliste;Paris\n" +
	"Martin;Jean;M;Lyon;69001;Dentiste;Rhône\n" +
	"Durand;Hélène;MME;Paris;75001;Médecin généraliste;Paris\n" +
	"Petit;Luc;M;Inconnue;99999;Dentiste;Paris\n"

// setupAPITest wires a router over a provider whose remote URL points at
// a local CSV fixture and whose coordinate caches live in a temp dir.
func setupAPITest(t *testing.T, payload string, status int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)

			return
		}

		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(upstream.Close)

	cacheDir := t.TempDir()

	require.NoError(t, os.WriteFile(
		filepath.Join(cacheDir, "villes_france_V1.csv"),
		[]byte("code_postal;nom;lat;lon\n75001;Paris;48.86;2.35\n69001;Lyon;45.77;4.83\n"),
		0o600,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(cacheDir, "dept_coords_cache.json"),
		[]byte(`{"Paris": [2.3522, 48.8566], "Rhône": [4.65, 45.8667]}`),
		0o600,
	))

	provider := NewSnapshotProvider(ProviderOptions{
		CacheDir: cacheDir,
		Loader:   dataset.NewLoader(&dataset.LoaderOptions{Timeout: 5 * time.Second}),
		Rand:     rand.New(rand.NewSource(1)), // #nosec G404 - deterministic test jitter
		URLOverrides: map[string]string{
			"ameli": upstream.URL,
			"rne":   upstream.URL,
		},
	})

	router := gin.New()
	NewServer(provider).Register(router)

	return router
}

func get(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	return w
}

func TestListDatasetsAPI(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/datasets")
	assert.Equal(t, http.StatusOK, w.Code)

	var infos []DatasetInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "ameli", infos[0].Name)
	assert.Equal(t, "rne", infos[1].Name)
}

func TestGetRecordsAPI(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/records")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Dataset string        `json:"dataset"`
		Columns []string      `json:"columns"`
		Total   int           `json:"total"`
		Rows    []dataset.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "ameli", body.Dataset)
	assert.Equal(t, 4, body.Total)
	require.Len(t, body.Rows, 4)

	// Enrichment columns ride along with the payload
	assert.Contains(t, body.Columns, "latitude_ville")
	assert.Contains(t, body.Columns, "longitude_departement")

	// Unresolvable postal code carries the zero sentinel
	assert.Equal(t, "0", body.Rows[3]["latitude_ville"])
	assert.NotEqual(t, "0", body.Rows[0]["latitude_ville"])
}

func TestGetRecordsAPI_Filtered(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/records?ville=Paris&specialite=M%C3%A9decin%20g%C3%A9n%C3%A9raliste")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total int           `json:"total"`
		Rows  []dataset.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 2, body.Total)
	for _, row := range body.Rows {
		assert.Equal(t, "Paris", row["coordonnees_ville"])
	}
}

func TestGetRecordsAPI_Search(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	// Accent-insensitive: plain "helene" finds "Hélène"
	w := get(t, router, "/api/records?q=helene")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total int           `json:"total"`
		Rows  []dataset.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Durand", body.Rows[0]["ps_activite_nom"])
}

func TestGetRecordsAPI_Pagination(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/records?limit=2&offset=1")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total  int           `json:"total"`
		Limit  int           `json:"limit"`
		Offset int           `json:"offset"`
		Rows   []dataset.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 2, body.Limit)
	assert.Equal(t, 1, body.Offset)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "Martin", body.Rows[0]["ps_activite_nom"])
}

func TestGetRecordsAPI_UnknownDataset(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/records?dataset=nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecordsAPI_NoData(t *testing.T) {
	router := setupAPITest(t, "", http.StatusInternalServerError)

	w := get(t, router, "/api/records")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		NoData      bool   `json:"no_data"`
		Message     string `json:"message"`
		Diagnostics []struct {
			Level   int    `json:"level"`
			Message string `json:"message"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.NoData)
	assert.Contains(t, body.Message, "Aucune donnée disponible")
	require.NotEmpty(t, body.Diagnostics)
	assert.Contains(t, body.Diagnostics[0].Message, "HTTP error 500")
}

func TestExportRecordsAPI(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/records/export?ville=Paris")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ameli_filtre.csv")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3) // header + 2 Paris rows
	assert.Contains(t, lines[0], "ps_activite_nom")
	assert.Contains(t, lines[0], ",") // export is comma-separated, not `;`
}

func TestGetStatsAPI(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Dataset     string               `json:"dataset"`
		Kind        string               `json:"kind"`
		Total       int                  `json:"total"`
		Genders     []dataset.ValueCount `json:"genders"`
		Specialties []dataset.ValueCount `json:"specialties"`
		Cities      []dataset.ValueCount `json:"cities"`
		Departments []dataset.ValueCount `json:"departments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "ameli", body.Dataset)
	assert.Equal(t, "professionnels de santé", body.Kind)
	assert.Equal(t, 4, body.Total)

	// M and MME are tied at 2; ties break alphabetically
	require.NotEmpty(t, body.Genders)
	assert.Equal(t, dataset.ValueCount{Value: "M", Count: 2}, body.Genders[0])

	require.NotEmpty(t, body.Cities)
	assert.Equal(t, dataset.ValueCount{Value: "Paris", Count: 2}, body.Cities[0])

	require.NotEmpty(t, body.Departments)
	assert.Equal(t, dataset.ValueCount{Value: "Paris", Count: 3}, body.Departments[0])
}

func TestGetStatsAPI_RespectsFilters(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/stats?specialite=Dentiste")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
}

func TestGetMapPointsAPI(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/map/points")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Points []struct {
			Lat   float64 `json:"lat"`
			Lng   float64 `json:"lng"`
			Label string  `json:"label"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// The 99999 row has no coordinates and never reaches the map
	require.Len(t, body.Points, 3)

	for _, p := range body.Points {
		assert.False(t, p.Lat == 0 && p.Lng == 0, "sentinel point leaked")
		assert.NotEmpty(t, p.Label)
	}

	assert.Contains(t, body.Points[0].Label, "Dupont")
	assert.Contains(t, body.Points[0].Label, "Paris")
}

func TestGetMapHexbinsAPI(t *testing.T) {
	router := setupAPITest(t, ameliPayload, http.StatusOK)

	w := get(t, router, "/api/map/hexbins?res=5")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Resolution int `json:"resolution"`
		Bins       []struct {
			Cell  string `json:"cell"`
			Count int    `json:"count"`
		} `json:"bins"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 5, body.Resolution)
	require.NotEmpty(t, body.Bins)

	total := 0
	for _, b := range body.Bins {
		total += b.Count
	}

	assert.Equal(t, 3, total)
}

func TestSnapshotProvider_MemoizesWithinTTL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	fetches := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fetches++
		_, _ = w.Write([]byte(ameliPayload))
	}))
	defer upstream.Close()

	provider := NewSnapshotProvider(ProviderOptions{
		CacheDir:     t.TempDir(),
		URLOverrides: map[string]string{"ameli": upstream.URL},
	})

	_, err := provider.Snapshot("ameli")
	require.NoError(t, err)
	_, err = provider.Snapshot("ameli")
	require.NoError(t, err)

	assert.Equal(t, 1, fetches)
}

func TestSnapshotProvider_UnknownDataset(t *testing.T) {
	provider := NewSnapshotProvider(ProviderOptions{CacheDir: t.TempDir()})

	_, err := provider.Snapshot("nope")
	assert.Error(t, err)
}
