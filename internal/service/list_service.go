package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/shoplist/internal/category"
	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/match"
	"github.com/vbonduro/shoplist/internal/search"
	"github.com/vbonduro/shoplist/internal/suggest"
	"github.com/vbonduro/shoplist/internal/textnorm"
)

// itemRepository is the subset of store.ItemStore that ListService requires.
type itemRepository interface {
	GetByName(ctx context.Context, owner, name string) (*domain.Item, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
}

// historyRepository is the subset of store.HistoryStore that ListService requires.
type historyRepository interface {
	Append(ctx context.Context, ev domain.HistoryEvent) (*domain.HistoryEvent, error)
	ListByOwner(ctx context.Context, owner string, action domain.Action) ([]domain.HistoryEvent, error)
}

const (
	hintLimit  = 3
	hintCutoff = 0.5
)

type ListService struct {
	items    itemRepository
	history  historyRepository
	names    *textnorm.Normalizer
	category *category.Categorizer
	matcher  *match.Matcher
	suggest  *suggest.Engine
	search   *search.Resolver
	locks    *keyLock
	clock    *clock
	logger   *slog.Logger
}

// Option tweaks a ListService at construction.
type Option func(*ListService)

// WithClock replaces the wall clock used to stamp items and history.
func WithClock(now func() time.Time) Option {
	return func(s *ListService) { s.clock = newClock(now) }
}

func NewListService(
	items itemRepository,
	history historyRepository,
	lex *lexicon.Lexicon,
	logger *slog.Logger,
	opts ...Option,
) (*ListService, error) {
	names, err := textnorm.New(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to build normalizer: %w", err)
	}
	s := &ListService{
		items:    items,
		history:  history,
		names:    names,
		category: category.New(lex),
		matcher:  match.New(names),
		suggest:  suggest.New(lex, names),
		search:   search.New(lex, names),
		locks:    newKeyLock(),
		clock:    newClock(nil),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Normalize exposes the canonical form the service stores names under.
func (s *ListService) Normalize(raw string) string {
	return s.names.Normalize(raw)
}

type AddInput struct {
	Owner    string
	Name     string
	Quantity int
	Category domain.Category
	Brand    string
	Price    *float64
}

func (in AddInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 || in.Quantity > domain.MaxQuantity {
		return fmt.Errorf("quantity must be between 1 and %d, got %d: %w", domain.MaxQuantity, in.Quantity, domain.ErrInvalidInput)
	}
	if in.Category != "" && !in.Category.Valid() {
		return fmt.Errorf("unknown category %q: %w", in.Category, domain.ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", domain.ErrInvalidInput)
	}
	return nil
}

type RemoveInput struct {
	Owner    string
	Name     string
	Quantity int
}

func (in RemoveInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 || in.Quantity > domain.MaxQuantity {
		return fmt.Errorf("quantity must be between 1 and %d, got %d: %w", domain.MaxQuantity, in.Quantity, domain.ErrInvalidInput)
	}
	return nil
}

type SearchInput struct {
	Owner    string
	Query    string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
}

// Validate checks the price window only; an empty query is reported by
// Search as ErrInvalidQuery.
func (in SearchInput) Validate() error {
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return fmt.Errorf("min_price exceeds max_price: %w", domain.ErrInvalidInput)
	}
	return nil
}

// RemoveResult reports what a removal did. Item is the remaining row after an
// update and nil after a delete.
type RemoveResult struct {
	Action   domain.Action `json:"action"`
	ItemName string        `json:"item_name"`
	Item     *domain.Item  `json:"item,omitempty"`
}

// NotFoundError is returned when a removal matches nothing. It unwraps to
// domain.ErrNotFound.
type NotFoundError struct {
	Name       string
	DidYouMean []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return domain.ErrNotFound }

// Add creates the item or merges into the existing one for the same
// canonical name, then records an add event.
func (s *ListService) Add(ctx context.Context, in AddInput) (*domain.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name := s.names.Normalize(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	cat := in.Category
	if cat == "" || cat == domain.CategoryOther {
		cat = s.category.Infer(name, in.Brand)
	}
	var price *float64
	if in.Price != nil {
		p := domain.RoundPrice(*in.Price)
		price = &p
	}

	unlock := s.locks.Lock(itemKey(in.Owner, name))
	defer unlock()

	existing, err := s.items.GetByName(ctx, in.Owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}

	now := s.clock.Now()
	var item *domain.Item
	if existing == nil {
		item, err = s.items.Create(ctx, &domain.Item{
			Owner:    in.Owner,
			Name:     name,
			Quantity: strconv.Itoa(in.Quantity),
			Category: cat,
			Brand:    in.Brand,
			Price:    price,
			AddedAt:  now,
		})
		if err != nil {
			return nil, err
		}
	} else {
		item = existing
		if n, ok := item.QuantityInt(); ok {
			if n > domain.MaxQuantity-in.Quantity {
				return nil, fmt.Errorf("%s would exceed %d: %w", name, domain.MaxQuantity, domain.ErrInvalidInput)
			}
			item.Quantity = strconv.Itoa(n + in.Quantity)
		} else {
			item.Quantity = strconv.Itoa(in.Quantity)
		}
		item.Category = cat
		item.Brand = in.Brand
		if price != nil {
			item.Price = price
		}
		if err := s.items.Update(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.record(ctx, in.Owner, name, domain.ActionAdd, now); err != nil {
		return nil, err
	}

	s.logger.Info("item added", "owner", in.Owner, "name", name, "quantity", item.Quantity, "category", item.Category)
	return item, nil
}

// Remove consumes quantity from the item the name resolves to. The item is
// deleted when the request covers everything left.
func (s *ListService) Remove(ctx context.Context, in RemoveInput) (*RemoveResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name := s.names.Normalize(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}

	target, err := s.resolve(ctx, in.Owner, name)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(itemKey(in.Owner, target))
	defer unlock()

	item, err := s.items.GetByName(ctx, in.Owner, target)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return nil, &NotFoundError{Name: in.Name}
	}

	current, ok := item.QuantityInt()
	if !ok {
		current = 1
	}

	result := &RemoveResult{ItemName: item.Name}
	if current > in.Quantity {
		item.Quantity = strconv.Itoa(current - in.Quantity)
		if err := s.items.Update(ctx, item); err != nil {
			return nil, err
		}
		result.Action = domain.ActionUpdate
		result.Item = item
	} else {
		if err := s.items.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
		result.Action = domain.ActionRemove
	}

	if err := s.record(ctx, in.Owner, item.Name, result.Action, s.clock.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("item removed", "owner", in.Owner, "query", in.Name, "name", item.Name, "action", result.Action)
	return result, nil
}

// resolve finds the stored name a removal should apply to.
func (s *ListService) resolve(ctx context.Context, owner, name string) (string, error) {
	exact, err := s.items.GetByName(ctx, owner, name)
	if err != nil {
		return "", fmt.Errorf("failed to look up item: %w", err)
	}
	if exact != nil {
		return exact.Name, nil
	}

	items, err := s.items.ListByOwner(ctx, owner)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}

	if matched, ok := s.matcher.Resolve(name, names); ok {
		s.logger.Debug("removal resolved", "owner", owner, "query", name, "match", matched)
		return matched, nil
	}

	nf := &NotFoundError{Name: name}
	for _, r := range s.matcher.Rank(name, names, hintLimit) {
		if r.Score >= hintCutoff {
			nf.DidYouMean = append(nf.DidYouMean, r.Name)
		}
	}
	return "", nf
}

func (s *ListService) record(ctx context.Context, owner, name string, action domain.Action, at time.Time) error {
	_, err := s.history.Append(ctx, domain.HistoryEvent{
		Owner:     owner,
		ItemName:  name,
		Action:    action,
		Timestamp: at,
	})
	return err
}

func (s *ListService) List(ctx context.Context, owner string) ([]*domain.Item, error) {
	return s.items.ListByOwner(ctx, owner)
}

// Suggest reads a snapshot without taking item locks; a concurrent write
// may or may not be reflected.
func (s *ListService) Suggest(ctx context.Context, owner string) (suggest.Bundle, error) {
	adds, err := s.history.ListByOwner(ctx, owner, domain.ActionAdd)
	if err != nil {
		return suggest.Bundle{}, err
	}
	items, err := s.items.ListByOwner(ctx, owner)
	if err != nil {
		return suggest.Bundle{}, err
	}
	return s.suggest.Suggest(suggest.Snapshot{Adds: adds, Items: items}), nil
}

func (s *ListService) Search(ctx context.Context, in SearchInput) ([]*domain.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	term, err := s.search.ResolveTerm(in.Query)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, in.Owner)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, search.Criteria{
		Term:     term,
		Brand:    in.Brand,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	}), nil
}

// History returns every event for owner, oldest first.
func (s *ListService) History(ctx context.Context, owner string) ([]domain.HistoryEvent, error) {
	return s.history.ListByOwner(ctx, owner, "")
}
