package city

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uptrace/bun"

	"github.com/fitness-fanatics/fitness-api/internal/database"
	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
)

// City is a selectable city of residence, seeded by migration.
type City struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Repository reads the city lookup table.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns all cities in alphabetical order.
func (r *Repository) List(ctx context.Context) ([]*City, error) {
	var rows []*database.City
	err := r.db.NewSelect().
		Model(&rows).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	cities := make([]*City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, &City{ID: row.ID, Name: row.Name, Value: row.Value})
	}
	return cities, nil
}

// Handler serves the city lookup list.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List returns the city lookup list
// @Summary      List cities
// @Tags         cities
// @Produce      json
// @Success      200 {array} City
// @Router       /api/cities [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	cities, err := h.repo.List(r.Context())
	if err != nil {
		logger.Error("failed to list cities", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, cities, http.StatusOK)
}
