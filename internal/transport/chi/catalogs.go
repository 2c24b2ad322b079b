package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
	logpkg "github.com/Tejass087/Skin-Care-Reccomadation/internal/logger"
	recommenduc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
)

// noResultsMessage accompanies an empty recommendation list.
const noResultsMessage = "no products found"

// CatalogStatus describes one engine's readiness.
type CatalogStatus struct {
	Catalog    string     `json:"catalog"`
	Prepared   bool       `json:"prepared"`
	Rows       int        `json:"rows"`
	Vocabulary int        `json:"vocabulary"`
	PreparedAt *time.Time `json:"prepared_at,omitempty"`
}

// RecommendationItem is one ranked product.
type RecommendationItem struct {
	Position   int               `json:"position"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Brand      string            `json:"brand"`
	Price      float64           `json:"price"`
	Rating     float64           `json:"rating"`
	Tags       map[string]string `json:"tags,omitempty"`
	ProductURL string            `json:"product_url,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
}

// IgnoredConstraint is a query constraint that did not take part in filtering.
type IgnoredConstraint struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// RecommendationResponse is the body of GET /catalogs/{catalog}/recommendations.
type RecommendationResponse struct {
	Catalog            string               `json:"catalog"`
	Path               string               `json:"path"`
	Items              []RecommendationItem `json:"items"`
	IgnoredConstraints []IgnoredConstraint  `json:"ignored_constraints"`
	Message            string               `json:"message,omitempty"`
}

// ListCatalogs handles GET /catalogs.
func (s *Server) ListCatalogs(w http.ResponseWriter, _ *http.Request) {
	statuses := s.recommend.Status()
	items := make([]CatalogStatus, 0, len(statuses))
	for _, st := range statuses {
		items = append(items, statusToResponse(st))
	}
	writeJSON(w, http.StatusOK, map[string]any{"catalogs": items})
}

// Recommend handles GET /catalogs/{catalog}/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	kind, ok := catalogParam(w, r)
	if !ok {
		return
	}

	raw, err := bindFacetQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	res, err := s.recommend.Recommend(r.Context(), kind, raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(&res))
}

// ReloadCatalog handles POST /catalogs/{catalog}/reload.
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	kind, ok := catalogParam(w, r)
	if !ok {
		return
	}

	if err := s.recommend.Reload(r.Context(), kind); err != nil {
		s.handleDomainError(w, err)
		return
	}

	for _, st := range s.recommend.Status() {
		if st.Kind != kind {
			continue
		}
		logpkg.FromContext(r.Context()).Info("catalog reloaded",
			zap.String("catalog", string(kind)),
			zap.Int("rows", st.Rows),
			zap.Int("vocabulary", st.Vocabulary),
		)
		writeJSON(w, http.StatusOK, statusToResponse(st))
		return
	}
	writeJSON(w, http.StatusOK, CatalogStatus{Catalog: string(kind)})
}

// catalogParam parses the {catalog} path segment and answers 404 for unsupported kinds.
func catalogParam(w http.ResponseWriter, r *http.Request) (domcat.Kind, bool) {
	kind, err := domcat.ParseKind(chi.URLParam(r, "catalog"))
	if err != nil {
		writeError(w, http.StatusNotFound, CodeCatalogNotFound, err.Error())
		return "", false
	}
	return kind, true
}

// bindFacetQuery reads the optional facet and text parameters. Numeric bounds
// stay raw so malformed values are dropped and reported instead of rejected.
func bindFacetQuery(r *http.Request) (query.Raw, error) {
	var raw query.Raw
	params := r.URL.Query()
	targets := []struct {
		name string
		dest *string
	}{
		{"category", &raw.Category},
		{"subcategory", &raw.Subcategory},
		{"brand", &raw.Brand},
		{"skin_type", &raw.SkinType},
		{"min_rating", &raw.MinRating},
		{"max_price", &raw.MaxPrice},
		{"q", &raw.Text},
	}
	for _, t := range targets {
		if err := runtime.BindQueryParameter("form", true, false, t.name, params, t.dest); err != nil {
			return query.Raw{}, err
		}
	}
	return raw, nil
}

func statusToResponse(st recommenduc.Status) CatalogStatus {
	out := CatalogStatus{
		Catalog:    string(st.Kind),
		Prepared:   st.Prepared,
		Rows:       st.Rows,
		Vocabulary: st.Vocabulary,
	}
	if st.Prepared {
		at := st.PreparedAt
		out.PreparedAt = &at
	}
	return out
}

func resultToResponse(res *ranking.Result) RecommendationResponse {
	hits := res.Hits()
	out := RecommendationResponse{
		Catalog:            string(res.Catalog()),
		Path:               string(res.Path()),
		Items:              make([]RecommendationItem, 0, len(hits)),
		IgnoredConstraints: make([]IgnoredConstraint, 0, len(res.Ignored())),
	}
	for i := range hits {
		rec := &hits[i].Record
		out.Items = append(out.Items, RecommendationItem{
			Position:   hits[i].Position,
			Score:      hits[i].Score,
			Name:       rec.Name(),
			Brand:      rec.Brand(),
			Price:      rec.Price(),
			Rating:     rec.Rating(),
			Tags:       rec.Tags(),
			ProductURL: rec.ProductURL(),
			ImageURL:   rec.ImageURL(),
		})
	}
	for _, ig := range res.Ignored() {
		out.IgnoredConstraints = append(out.IgnoredConstraints, IgnoredConstraint{
			Field:  ig.Field,
			Value:  ig.Value,
			Reason: ig.Reason,
		})
	}
	if res.IsEmpty() {
		out.Message = noResultsMessage
	}
	return out
}
