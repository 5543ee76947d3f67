// Package command turns free-text shopping commands, in English or another
// phrasebook language, into list operations.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/vbonduro/shoplist/internal/audit"
	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/nlp"
	"github.com/vbonduro/shoplist/internal/nlp/keyword"
	"github.com/vbonduro/shoplist/internal/service"
)

// listService is the subset of service.ListService that Interpreter requires.
type listService interface {
	Add(ctx context.Context, in service.AddInput) (*domain.Item, error)
	Remove(ctx context.Context, in service.RemoveInput) (*service.RemoveResult, error)
	Search(ctx context.Context, in service.SearchInput) ([]*domain.Item, error)
}

// badTranslation catches the stock mistranslations of Hindi add verbs.
var badTranslation = regexp.MustCompile(`(?i)joints|join|pour|common|discoveries`)

type Interpreter struct {
	list       listService
	translator nlp.Translator
	extractor  nlp.IntentExtractor
	offline    *keyword.Parser
	audit      audit.Sink
	logger     *slog.Logger
}

func NewInterpreter(
	list listService,
	translator nlp.Translator,
	extractor nlp.IntentExtractor,
	lex *lexicon.Lexicon,
	sink audit.Sink,
	logger *slog.Logger,
) *Interpreter {
	if sink == nil {
		sink = audit.Discard{}
	}
	return &Interpreter{
		list:       list,
		translator: translator,
		extractor:  extractor,
		offline:    keyword.NewParser(lex),
		audit:      sink,
		logger:     logger,
	}
}

// Result is the outcome of an executed command. Exactly one of Item, Removed
// or Items is set, matching Intent.Kind.
type Result struct {
	Intent  nlp.Intent            `json:"parsed"`
	Item    *domain.Item          `json:"item,omitempty"`
	Removed *service.RemoveResult `json:"removed,omitempty"`
	Items   []*domain.Item        `json:"items,omitempty"`
}

// Interpret parses text spoken in lang. English goes straight to the English
// parser; other languages are translated first, then fall back to the
// offline phrasebook and finally the extractor. Phrases nothing understood
// are recorded in the audit sink and returned as a non-actionable intent.
func (i *Interpreter) Interpret(ctx context.Context, text, lang string) (nlp.Intent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nlp.Unknown, fmt.Errorf("command text is required: %w", domain.ErrInvalidInput)
	}
	lang = nlp.PrimaryLang(lang)

	var intent nlp.Intent
	if lang == "en" {
		intent = i.interpretEnglish(ctx, text)
	} else {
		intent = i.interpretTranslated(ctx, text, lang)
	}
	intent.Name = strings.ToLower(strings.TrimSpace(intent.Name))

	if !intent.Actionable() {
		if err := i.LogUnmapped(lang, text); err != nil {
			i.logger.Error("failed to record unmapped phrase", "lang", lang, "error", err)
		}
	}
	return intent, nil
}

func (i *Interpreter) interpretEnglish(ctx context.Context, text string) nlp.Intent {
	if parsed := nlp.ParseEnglish(text); parsed.Actionable() {
		return parsed
	}
	return i.extract(ctx, text)
}

func (i *Interpreter) interpretTranslated(ctx context.Context, text, lang string) nlp.Intent {
	translated, err := i.translator.Translate(ctx, text, lang)
	if err != nil {
		i.logger.Warn("translation failed, using offline parser", "lang", lang, "error", err)
		return i.offline.Parse(text, lang)
	}

	parsed := nlp.ParseEnglish(translated)
	if parsed.Actionable() && trustworthy(translated) {
		i.logger.Debug("command translated", "lang", lang, "translated", translated)
		return parsed
	}

	if offline := i.offline.Parse(text, lang); offline.Actionable() {
		return offline
	}
	return i.extract(ctx, text)
}

func (i *Interpreter) extract(ctx context.Context, text string) nlp.Intent {
	intent, err := i.extractor.Extract(ctx, text)
	if err != nil {
		i.logger.Warn("intent extraction failed", "error", err)
		return nlp.Unknown
	}
	return intent
}

// trustworthy rejects translations that are known garbage or that still
// carry non-Latin letters.
func trustworthy(translated string) bool {
	if badTranslation.MatchString(translated) {
		return false
	}
	for _, r := range translated {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

// Execute interprets text and applies it to owner's list.
func (i *Interpreter) Execute(ctx context.Context, owner, text, lang string) (*Result, error) {
	intent, err := i.Interpret(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	if !intent.Actionable() {
		return nil, fmt.Errorf("could not understand %q: %w", text, domain.ErrInvalidInput)
	}

	res := &Result{Intent: intent}
	qty, err := quantityOf(intent.Quantity)
	if err != nil {
		return nil, err
	}

	switch intent.Kind {
	case nlp.KindAdd:
		res.Item, err = i.list.Add(ctx, service.AddInput{Owner: owner, Name: intent.Name, Quantity: qty})
	case nlp.KindRemove:
		res.Removed, err = i.list.Remove(ctx, service.RemoveInput{Owner: owner, Name: intent.Name, Quantity: qty})
	case nlp.KindSearch:
		res.Items, err = i.list.Search(ctx, service.SearchInput{Owner: owner, Query: intent.Name})
		if res.Items == nil {
			res.Items = []*domain.Item{}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s %q: %w", intent.Kind, intent.Name, err)
	}

	i.logger.Info("command executed", "owner", owner, "intent", intent.Kind, "name", intent.Name, "quantity", qty)
	return res, nil
}

// quantityOf reads a spoken quantity. Anything that is not a positive whole
// number counts as one; numbers past domain.MaxQuantity are rejected.
func quantityOf(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) || n > domain.MaxQuantity {
		return 0, fmt.Errorf("quantity %s is too large: %w", s, domain.ErrInvalidInput)
	}
	if err != nil || n < 1 {
		return 1, nil
	}
	return n, nil
}

// Translate renders text in English. An empty source means auto-detect.
// Backend failures are reported as domain.ErrExternalService.
func (i *Interpreter) Translate(ctx context.Context, text, source string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("text is required: %w", domain.ErrInvalidInput)
	}
	if source = strings.TrimSpace(source); source == "" {
		source = "auto"
	}

	translated, err := i.translator.Translate(ctx, text, source)
	if err != nil {
		return "", fmt.Errorf("failed to translate: %w: %w", domain.ErrExternalService, err)
	}
	return translated, nil
}

// LogUnmapped records a phrase no parser could map.
func (i *Interpreter) LogUnmapped(lang, phrase string) error {
	if strings.TrimSpace(phrase) == "" {
		return fmt.Errorf("phrase is required: %w", domain.ErrInvalidInput)
	}
	if err := i.audit.Record(lang, phrase); err != nil {
		return fmt.Errorf("failed to log unmapped phrase: %w", err)
	}
	i.logger.Info("unmapped phrase", "lang", lang, "phrase", phrase)
	return nil
}
