package web

import (
	"net/http"
	"strings"

	"github.com/vbonduro/shoplist/internal/category"
	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/service"
)

type addItemRequest struct {
	Name     string    `json:"name"`
	Quantity *quantity `json:"quantity"`
	Category string    `json:"category"`
	Brand    string    `json:"brand"`
	Price    *float64  `json:"price"`
}

type itemResponse struct {
	Success bool         `json:"success"`
	Item    *domain.Item `json:"item"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	in := service.AddInput{
		Owner:    owner(r),
		Name:     req.Name,
		Quantity: req.Quantity.orOne(),
		Brand:    strings.TrimSpace(req.Brand),
		Price:    req.Price,
	}
	// Unknown labels fall back to inference rather than failing the add.
	if strings.TrimSpace(req.Category) != "" {
		in.Category = category.Parse(req.Category)
	}

	item, err := s.list.Add(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Success: true, Item: item})
}

type removeItemRequest struct {
	Name     string    `json:"name"`
	Quantity *quantity `json:"quantity"`
}

type removeResponse struct {
	Success bool `json:"success"`
	*service.RemoveResult
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.list.Remove(r.Context(), service.RemoveInput{
		Owner:    owner(r),
		Name:     req.Name,
		Quantity: req.Quantity.orOne(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removeResponse{Success: true, RemoveResult: res})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.list.List(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.list.Suggest(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	minPrice, err := queryPrice(r, "min_price")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	maxPrice, err := queryPrice(r, "max_price")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	items, err := s.list.Search(r.Context(), service.SearchInput{
		Owner:    owner(r),
		Query:    q.Get("q"),
		Brand:    q.Get("brand"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	events, err := s.list.History(r.Context(), owner(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.HistoryEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
