package chi

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tagsim/internal/domain"
	"github.com/kailas-cloud/tagsim/internal/domain/recommend/target"
)

// PlaceholderLabel is shown instead of the target when nothing is resolved.
const PlaceholderLabel = "No item selected"

//go:embed templates/*
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html.tmpl"))

type pageRow struct {
	Rank  int
	Name  string
	Tags  string
	Score string
}

type pageOption struct {
	ID   int64
	Name string
}

type pageData struct {
	Options     []pageOption
	Selected    int64
	HasSelected bool
	K           int
	MaxK        int
	TargetName  string
	TargetTags  string
	Placeholder string
	Rows        []pageRow
	Error       string
}

// Index handles GET /: an item dropdown, a K input and the ranked table.
// Options carry item ids, so items sharing a name stay distinct. A numeric
// target is looked up by id first, then by name. Without a target the first
// catalog item is shown; an unknown target renders the placeholder.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	params, err := bindIndexParams(r)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{Error: err.Error(), Placeholder: PlaceholderLabel})
		return
	}

	data := pageData{Placeholder: PlaceholderLabel}

	items, err := s.catalog.Items(r.Context())
	if err != nil {
		s.logger.Error("list items", zap.Error(err))
		data.Error = safeDomainMessage(err)
		s.renderPage(w, http.StatusServiceUnavailable, data)
		return
	}
	data.Options = make([]pageOption, len(items))
	for i := range items {
		data.Options[i] = pageOption{ID: items[i].ID(), Name: items[i].Name()}
	}

	k := 0
	if params.K != nil {
		k = *params.K
	}

	var tgt target.Target
	switch {
	case params.Target != nil && *params.Target != "":
		tgt = target.Parse(*params.Target)
	case len(items) > 0:
		tgt = target.ByID(data.Options[0].ID)
	}

	defaultK, maxK := s.limits.Bounds()
	data.K, data.MaxK = defaultK, maxK
	if tgt.IsZero() {
		s.renderPage(w, http.StatusOK, data)
		return
	}

	req, err := s.limits.New(tgt, k)
	if err != nil {
		data.Error = safeDomainMessage(err)
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}
	data.K = req.K()

	rec, err := s.recommend.Recommend(r.Context(), &req)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.renderPage(w, http.StatusOK, data)
		return
	case err != nil:
		s.logger.Error("recommend", zap.Error(err))
		data.Error = safeDomainMessage(err)
		s.renderPage(w, http.StatusInternalServerError, data)
		return
	}

	data.Selected, data.HasSelected = rec.Target.ID(), true
	data.TargetName = rec.Target.Name()
	data.TargetTags = rec.Target.RawTags()
	data.Rows = make([]pageRow, len(rec.Results))
	for i := range rec.Results {
		it := rec.Results[i].Item()
		data.Rows[i] = pageRow{
			Rank:  i + 1,
			Name:  it.Name(),
			Tags:  it.RawTags(),
			Score: strconv.FormatFloat(rec.Results[i].Score(), 'f', 4, 64),
		}
	}
	s.renderPage(w, http.StatusOK, data)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}
