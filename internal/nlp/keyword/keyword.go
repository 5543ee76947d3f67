package keyword

import (
	"context"
	"fmt"
	"strings"

	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/nlp"
)

// Glossary translates word by word from the phrasebooks and reorders the
// result into verb, quantity, item so the English parser can read it.
type Glossary struct {
	byLang map[string]*vocab
	all    *vocab
}

func NewGlossary(lex *lexicon.Lexicon) *Glossary {
	g := &Glossary{byLang: make(map[string]*vocab)}
	var books []*lexicon.Phrasebook
	for _, lang := range lex.Languages() {
		pb, _ := lex.Phrasebook(lang)
		books = append(books, pb)
		g.byLang[lang] = newVocab(pb)
	}
	g.all = newVocab(books...)
	return g
}

func (g *Glossary) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	v := g.all
	if sourceLang != "" && sourceLang != "auto" {
		lv, ok := g.byLang[nlp.PrimaryLang(sourceLang)]
		if !ok {
			return "", fmt.Errorf("no phrasebook for language %q", sourceLang)
		}
		v = lv
	}

	s := v.scan(Tokens(text))
	if len(s.items) == 0 {
		return "", fmt.Errorf("no glossary entry matched %q", text)
	}

	parts := make([]string, 0, len(s.items)+2)
	if s.kind != nlp.KindUnknown {
		parts = append(parts, string(s.kind))
	}
	if s.quantity != "" {
		parts = append(parts, s.quantity)
	}
	parts = append(parts, s.items...)
	return strings.Join(parts, " "), nil
}

// Extractor spots intent verbs and dictionary items in any phrasebook
// language, English verbs included.
type Extractor struct {
	vocab *vocab
}

func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	var books []*lexicon.Phrasebook
	for _, lang := range lex.Languages() {
		pb, _ := lex.Phrasebook(lang)
		books = append(books, pb)
	}
	return &Extractor{vocab: newVocab(books...)}
}

func (e *Extractor) Extract(ctx context.Context, text string) (nlp.Intent, error) {
	if err := ctx.Err(); err != nil {
		return nlp.Unknown, err
	}
	s := e.vocab.scan(Tokens(text))
	return nlp.Intent{
		Kind:     s.kind,
		Name:     strings.Join(s.items, " "),
		Quantity: s.quantityOrOne(),
	}, nil
}

// Parser is the offline command reader for one phrasebook language. Words
// missing from the item dictionary are kept as the item name verbatim.
type Parser struct {
	byLang map[string]*vocab
}

func NewParser(lex *lexicon.Lexicon) *Parser {
	p := &Parser{byLang: make(map[string]*vocab)}
	for _, lang := range lex.Languages() {
		pb, _ := lex.Phrasebook(lang)
		p.byLang[lang] = newVocab(pb)
	}
	return p
}

// Parse reads text in lang. Languages without a phrasebook yield nlp.Unknown.
func (p *Parser) Parse(text, lang string) nlp.Intent {
	v, ok := p.byLang[nlp.PrimaryLang(lang)]
	if !ok {
		return nlp.Unknown
	}

	s := v.scan(Tokens(text))
	name := strings.Join(s.items, " ")
	if name == "" {
		name = strings.Join(s.rest, " ")
	}
	return nlp.Intent{Kind: s.kind, Name: name, Quantity: s.quantityOrOne()}
}
