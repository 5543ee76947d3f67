// Package lexicon holds the static word tables the shopping engine relies on:
// category keywords, name aliases, search synonyms, substitutes, seasonal
// items, inflection overrides and per-language command phrasebooks.
//
// A Lexicon is decoded once from HCL and never mutated afterwards, so a
// single value can be shared by every component and goroutine.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"golang.org/x/text/unicode/norm"

	"github.com/vbonduro/shoplist/internal/domain"
)

//go:embed default.hcl
var defaultSource []byte

const defaultShortageThreshold = 5

type fileSpec struct {
	ShortageThreshold int               `hcl:"shortage_threshold,optional"`
	Categories        []categoryBlock   `hcl:"category,block"`
	Seasonal          []string          `hcl:"seasonal,optional"`
	Substitutes       []substituteBlock `hcl:"substitute,block"`
	Invariants        []string          `hcl:"invariants,optional"`
	SingularSuffixes  []string          `hcl:"singular_suffixes,optional"`
	Irregulars        map[string]string `hcl:"irregulars,optional"`
	Aliases           map[string]string `hcl:"aliases,optional"`
	SearchSynonyms    map[string]string `hcl:"search_synonyms,optional"`
	Phrasebooks       []phrasebookBlock `hcl:"phrasebook,block"`
}

type categoryBlock struct {
	Name     string   `hcl:"name,label"`
	Keywords []string `hcl:"keywords"`
}

type substituteBlock struct {
	Item    string   `hcl:"item,label"`
	Options []string `hcl:"options"`
}

type phrasebookBlock struct {
	Lang    string            `hcl:"lang,label"`
	Add     []string          `hcl:"add,optional"`
	Remove  []string          `hcl:"remove,optional"`
	Search  []string          `hcl:"search,optional"`
	Items   map[string]string `hcl:"items,optional"`
	Numbers map[string]int    `hcl:"numbers,optional"`
}

// CategoryRule is one row of the ordered category table.
type CategoryRule struct {
	Category domain.Category
	Keywords []string
}

// Phrasebook carries the offline command vocabulary for one language.
type Phrasebook struct {
	Lang        string
	AddVerbs    []string
	RemoveVerbs []string
	SearchVerbs []string
	Items       map[string]string
	Numbers     map[string]int
}

type Lexicon struct {
	shortageThreshold int
	categories        []CategoryRule
	seasonal          []string
	substitutes       map[string][]string
	invariants        map[string]bool
	singularSuffixes  []string
	irregulars        map[string]string
	plurals           map[string]string
	aliases           map[string]string
	searchSynonyms    map[string]string
	phrasebooks       map[string]*Phrasebook
}

// Default returns the lexicon compiled into the binary.
func Default() (*Lexicon, error) {
	return Parse("default.hcl", defaultSource)
}

// Load reads a lexicon from path, or returns Default when path is empty.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes an HCL lexicon. filename is used for diagnostics and must
// carry the .hcl extension.
func Parse(filename string, src []byte) (*Lexicon, error) {
	var spec fileSpec
	if err := hclsimple.Decode(filename, src, nil, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	return build(&spec)
}

func build(spec *fileSpec) (*Lexicon, error) {
	lex := &Lexicon{
		shortageThreshold: spec.ShortageThreshold,
		substitutes:       make(map[string][]string, len(spec.Substitutes)),
		invariants:        make(map[string]bool, len(spec.Invariants)),
		irregulars:        make(map[string]string, len(spec.Irregulars)),
		plurals:           make(map[string]string, len(spec.Irregulars)),
		aliases:           make(map[string]string, len(spec.Aliases)),
		searchSynonyms:    make(map[string]string, len(spec.SearchSynonyms)),
		phrasebooks:       make(map[string]*Phrasebook, len(spec.Phrasebooks)),
	}
	if lex.shortageThreshold == 0 {
		lex.shortageThreshold = defaultShortageThreshold
	}
	if lex.shortageThreshold < 1 {
		return nil, fmt.Errorf("shortage_threshold must be positive, got %d", lex.shortageThreshold)
	}

	if len(spec.Categories) == 0 {
		return nil, fmt.Errorf("lexicon defines no categories")
	}
	seen := make(map[domain.Category]bool)
	for _, block := range spec.Categories {
		cat := domain.Category(clean(block.Name))
		if !cat.Valid() || cat == domain.CategoryOther {
			return nil, fmt.Errorf("unknown category %q", block.Name)
		}
		if seen[cat] {
			return nil, fmt.Errorf("category %q defined twice", cat)
		}
		seen[cat] = true
		keywords := cleanAll(block.Keywords)
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", cat)
		}
		lex.categories = append(lex.categories, CategoryRule{Category: cat, Keywords: keywords})
	}

	lex.seasonal = cleanAll(spec.Seasonal)

	for _, block := range spec.Substitutes {
		key := clean(block.Item)
		if _, dup := lex.substitutes[key]; dup {
			return nil, fmt.Errorf("substitute %q defined twice", key)
		}
		lex.substitutes[key] = cleanAll(block.Options)
	}

	for _, w := range cleanAll(spec.Invariants) {
		lex.invariants[w] = true
	}
	lex.singularSuffixes = cleanAll(spec.SingularSuffixes)

	for plural, singular := range spec.Irregulars {
		p, s := clean(plural), clean(singular)
		if p == "" || s == "" {
			return nil, fmt.Errorf("irregular %q has an empty form", plural)
		}
		lex.irregulars[p] = s
		lex.plurals[s] = p
	}

	if err := fillMap(lex.aliases, spec.Aliases, "alias"); err != nil {
		return nil, err
	}
	for key, target := range lex.aliases {
		if _, chained := lex.aliases[target]; chained {
			return nil, fmt.Errorf("alias %q points at %q which is itself an alias", key, target)
		}
	}
	if err := fillMap(lex.searchSynonyms, spec.SearchSynonyms, "search synonym"); err != nil {
		return nil, err
	}

	for _, block := range spec.Phrasebooks {
		lang := clean(block.Lang)
		if _, dup := lex.phrasebooks[lang]; dup {
			return nil, fmt.Errorf("phrasebook %q defined twice", lang)
		}
		pb := &Phrasebook{
			Lang:        lang,
			AddVerbs:    cleanAll(block.Add),
			RemoveVerbs: cleanAll(block.Remove),
			SearchVerbs: cleanAll(block.Search),
			Items:       make(map[string]string, len(block.Items)),
			Numbers:     make(map[string]int, len(block.Numbers)),
		}
		if err := fillMap(pb.Items, block.Items, "phrasebook item"); err != nil {
			return nil, err
		}
		for word, n := range block.Numbers {
			if n < 1 {
				return nil, fmt.Errorf("phrasebook %q: number word %q must be positive", lang, word)
			}
			pb.Numbers[clean(word)] = n
		}
		lex.phrasebooks[lang] = pb
	}

	return lex, nil
}

func fillMap(dst, src map[string]string, kind string) error {
	for k, v := range src {
		key, val := clean(k), clean(v)
		if key == "" || val == "" {
			return fmt.Errorf("%s %q has an empty side", kind, k)
		}
		if key == val {
			return fmt.Errorf("%s %q maps to itself", kind, k)
		}
		dst[key] = val
	}
	return nil
}

// clean brings table entries into the same shape the normalizer produces for
// user input.
func clean(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFC.String(s))), " ")
}

func cleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := clean(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (l *Lexicon) ShortageThreshold() int { return l.shortageThreshold }

// Categories returns the category rules in file order.
func (l *Lexicon) Categories() []CategoryRule {
	out := make([]CategoryRule, len(l.categories))
	copy(out, l.categories)
	return out
}

func (l *Lexicon) Seasonal() []string {
	out := make([]string, len(l.seasonal))
	copy(out, l.seasonal)
	return out
}

// Substitutes returns the alternatives for a canonical item name, or nil.
func (l *Lexicon) Substitutes(name string) []string {
	opts, ok := l.substitutes[name]
	if !ok {
		return nil
	}
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

func (l *Lexicon) IsInvariant(word string) bool { return l.invariants[word] }

// HasSingularSuffix reports whether word ends in a suffix that never marks a
// plural.
func (l *Lexicon) HasSingularSuffix(word string) bool {
	for _, suffix := range l.singularSuffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// Irregular returns the singular form of an irregular plural.
func (l *Lexicon) Irregular(plural string) (string, bool) {
	s, ok := l.irregulars[plural]
	return s, ok
}

// IrregularPlural returns the plural form of an irregular singular.
func (l *Lexicon) IrregularPlural(singular string) (string, bool) {
	p, ok := l.plurals[singular]
	return p, ok
}

// IrregularSingulars lists every singular form named by the irregular table.
func (l *Lexicon) IrregularSingulars() []string {
	out := make([]string, 0, len(l.plurals))
	for s := range l.plurals {
		out = append(out, s)
	}
	return out
}

func (l *Lexicon) Alias(name string) (string, bool) {
	v, ok := l.aliases[name]
	return v, ok
}

// AliasTargets lists the distinct canonical names the alias table maps to.
func (l *Lexicon) AliasTargets() []string {
	seen := make(map[string]bool, len(l.aliases))
	out := make([]string, 0, len(l.aliases))
	for _, v := range l.aliases {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func (l *Lexicon) SearchSynonym(term string) (string, bool) {
	v, ok := l.searchSynonyms[term]
	return v, ok
}

// Languages lists the phrasebook language codes in sorted order.
func (l *Lexicon) Languages() []string {
	out := make([]string, 0, len(l.phrasebooks))
	for lang := range l.phrasebooks {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

// Phrasebook returns the command vocabulary for lang. The result is shared
// and must not be modified.
func (l *Lexicon) Phrasebook(lang string) (*Phrasebook, bool) {
	pb, ok := l.phrasebooks[clean(lang)]
	return pb, ok
}
