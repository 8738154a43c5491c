// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mgirard/annuaire/dataset"
	"github.com/mgirard/annuaire/geo"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Server serves the enriched directory as a JSON/CSV API for the
// dashboard front-end.
type Server struct {
	provider *SnapshotProvider
}

// NewServer creates a server over the given snapshot provider.
func NewServer(provider *SnapshotProvider) *Server {
	return &Server{provider: provider}
}

// Register installs the API routes on the engine.
func (s *Server) Register(r *gin.Engine) {
	r.GET("/api/datasets", s.listDatasets)
	r.GET("/api/records", s.getRecords)
	r.GET("/api/records/export", s.exportRecords)
	r.GET("/api/stats", s.getStats)
	r.GET("/api/map/points", s.getMapPoints)
	r.GET("/api/map/hexbins", s.getMapHexbins)
}

// Run starts the server on addr. Local use only.
func (s *Server) Run(addr string) error {
	r := gin.Default()
	s.Register(r)

	return r.Run(addr)
}

// DatasetInfo is a registry entry as exposed over the API.
type DatasetInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) listDatasets(ctx *gin.Context) {
	infos := make([]DatasetInfo, 0, 2)

	_ = dataset.Each(func(ref dataset.Reference) error {
		infos = append(infos, DatasetInfo{ID: ref.ID, Name: ref.Name, Description: ref.Description})

		return nil
	})

	ctx.JSON(http.StatusOK, infos)
}

// criteriaFromQuery maps the sidebar controls onto a Criteria value. The
// core never learns how the controls were collected.
func criteriaFromQuery(ctx *gin.Context) dataset.Criteria {
	return dataset.Criteria{
		Name:        ctx.Query("nom"),
		FirstName:   ctx.Query("prenom"),
		Gender:      ctx.Query("genre"),
		City:        ctx.Query("ville"),
		PostalCode:  ctx.Query("code_postal"),
		Specialty:   ctx.Query("specialite"),
		Departments: ctx.QueryArray("departement"),
		SearchTerm:  ctx.Query("q"),
	}
}

// snapshot resolves the dataset query parameter ("ameli" by default) and
// returns its snapshot, replying 404 on unknown datasets.
func (s *Server) snapshot(ctx *gin.Context) (*Snapshot, bool) {
	name := ctx.DefaultQuery("dataset", "ameli")

	snapshot, err := s.provider.Snapshot(name)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return nil, false
	}

	return snapshot, true
}

// noData is the single user-visible degraded state: no lower-level error
// ever propagates past this.
func noData(ctx *gin.Context, snapshot *Snapshot) {
	ctx.JSON(http.StatusOK, gin.H{
		"no_data":     true,
		"message":     "Aucune donnée disponible. Veuillez vérifier la connexion à l'API.",
		"diagnostics": snapshot.Diags,
	})
}

func (s *Server) getRecords(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}

	if snapshot.Empty() {
		noData(ctx, snapshot)

		return
	}

	filtered := dataset.Filter(snapshot.Table, snapshot.Shape, criteriaFromQuery(ctx))

	limit := queryInt(ctx, "limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	offset := queryInt(ctx, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	rows := filtered.Rows
	if offset >= len(rows) {
		rows = nil
	} else if offset+limit < len(rows) {
		rows = rows[offset : offset+limit]
	} else {
		rows = rows[offset:]
	}

	ctx.JSON(http.StatusOK, gin.H{
		"dataset":     snapshot.Ref.Name,
		"columns":     filtered.Columns,
		"total":       filtered.Len(),
		"limit":       limit,
		"offset":      offset,
		"rows":        rows,
		"diagnostics": snapshot.Diags,
	})
}

func (s *Server) exportRecords(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}

	if snapshot.Empty() {
		noData(ctx, snapshot)

		return
	}

	filtered := dataset.Filter(snapshot.Table, snapshot.Shape, criteriaFromQuery(ctx))

	ctx.Header("Content-Disposition", `attachment; filename="`+snapshot.Ref.Name+`_filtre.csv"`)
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Status(http.StatusOK)

	if err := filtered.WriteCSV(ctx.Writer); err != nil {
		_ = ctx.Error(err)
	}
}

func (s *Server) getStats(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}

	if snapshot.Empty() {
		noData(ctx, snapshot)

		return
	}

	filtered := dataset.Filter(snapshot.Table, snapshot.Shape, criteriaFromQuery(ctx))
	shape := snapshot.Shape

	stats := gin.H{
		"dataset": snapshot.Ref.Name,
		"kind":    shape.Kind.String(),
		"total":   filtered.Len(),
	}

	// Absent columns simply omit their block
	if shape.GenderColumn != "" {
		stats["genders"] = filtered.ValueCounts(shape.GenderColumn, 0)
	}

	if shape.SpecialtyColumn != "" {
		stats["specialties"] = filtered.ValueCounts(shape.SpecialtyColumn, 15)
	}

	if shape.CityColumn != "" {
		stats["cities"] = filtered.ValueCounts(shape.CityColumn, 20)
	}

	if shape.DepartmentColumn != "" {
		stats["departments"] = filtered.ValueCounts(shape.DepartmentColumn, 0)
	}

	ctx.JSON(http.StatusOK, stats)
}

func (s *Server) getMapPoints(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}

	if snapshot.Empty() {
		noData(ctx, snapshot)

		return
	}

	filtered := dataset.Filter(snapshot.Table, snapshot.Shape, criteriaFromQuery(ctx))
	shape := snapshot.Shape

	label := func(row dataset.Row) string {
		parts := make([]string, 0, 3)

		for _, col := range []string{shape.NameColumn, shape.FirstNameColumn, shape.CityColumn} {
			if col == "" {
				continue
			}

			if v := row.Get(col); v != "" {
				parts = append(parts, v)
			}
		}

		return strings.Join(parts, " ")
	}

	limit := queryInt(ctx, "limit", geo.MaxMapPoints)

	points := geo.CollectPoints(filtered, label, limit)

	ctx.JSON(http.StatusOK, gin.H{
		"dataset": snapshot.Ref.Name,
		"points":  points,
	})
}

func (s *Server) getMapHexbins(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}

	if snapshot.Empty() {
		noData(ctx, snapshot)

		return
	}

	filtered := dataset.Filter(snapshot.Table, snapshot.Shape, criteriaFromQuery(ctx))

	resolution := queryInt(ctx, "res", geo.DefaultHexResolution)
	if resolution < 1 || resolution > 10 {
		resolution = geo.DefaultHexResolution
	}

	bins, err := geo.HexBins(filtered, resolution)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"dataset":    snapshot.Ref.Name,
		"resolution": resolution,
		"bins":       bins,
	})
}

func queryInt(ctx *gin.Context, name string, fallback int) int {
	v := ctx.Query(name)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
