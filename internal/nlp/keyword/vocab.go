// Package keyword implements the nlp interfaces offline, from the lexicon's
// phrasebooks. It needs no network and is the default backend.
package keyword

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/nlp"
)

// englishVerbs are recognised in every vocabulary.
var englishVerbs = map[string]nlp.Kind{
	"add":    nlp.KindAdd,
	"remove": nlp.KindRemove,
	"find":   nlp.KindSearch,
	"search": nlp.KindSearch,
}

// trailingMarks are dropped from the end of a word before a second lookup,
// so inflected verb and noun endings still hit the phrasebook.
const trailingMarks = "ँंृे"

type phrase struct {
	words  []string
	kind   nlp.Kind
	target string
}

type vocab struct {
	verbs   []phrase
	items   []phrase
	numbers map[string]int
}

func newVocab(books ...*lexicon.Phrasebook) *vocab {
	v := &vocab{numbers: make(map[string]int)}
	for _, pb := range books {
		v.addVerbs(pb.AddVerbs, nlp.KindAdd)
		v.addVerbs(pb.RemoveVerbs, nlp.KindRemove)
		v.addVerbs(pb.SearchVerbs, nlp.KindSearch)
		for word, english := range pb.Items {
			v.items = append(v.items, phrase{words: strings.Fields(word), target: english})
		}
		for word, n := range pb.Numbers {
			v.numbers[word] = n
		}
	}
	for word, kind := range englishVerbs {
		v.verbs = append(v.verbs, phrase{words: []string{word}, kind: kind})
	}

	longestFirst := func(a, b phrase) int {
		if d := len(b.words) - len(a.words); d != 0 {
			return d
		}
		return strings.Compare(strings.Join(a.words, " "), strings.Join(b.words, " "))
	}
	slices.SortStableFunc(v.verbs, longestFirst)
	slices.SortStableFunc(v.items, longestFirst)
	return v
}

func (v *vocab) addVerbs(words []string, kind nlp.Kind) {
	for _, w := range words {
		v.verbs = append(v.verbs, phrase{words: strings.Fields(w), kind: kind})
	}
}

// scanned is what a vocabulary recognised in one utterance.
type scanned struct {
	kind     nlp.Kind
	quantity string
	items    []string
	rest     []string
}

func (s scanned) quantityOrOne() string {
	if s.quantity == "" {
		return "1"
	}
	return s.quantity
}

func (v *vocab) scan(tokens []string) scanned {
	s := scanned{kind: nlp.KindUnknown}
	for i := 0; i < len(tokens); {
		if p, n := longestMatch(v.verbs, tokens[i:]); n > 0 {
			if s.kind == nlp.KindUnknown {
				s.kind = p.kind
			}
			i += n
			continue
		}
		if p, n := longestMatch(v.items, tokens[i:]); n > 0 {
			s.items = append(s.items, p.target)
			i += n
			continue
		}
		if q, ok := v.number(tokens[i]); ok {
			if s.quantity == "" {
				s.quantity = strconv.Itoa(q)
			}
			i++
			continue
		}
		s.rest = append(s.rest, tokens[i])
		i++
	}
	return s
}

func (v *vocab) number(tok string) (int, bool) {
	if n, ok := v.numbers[tok]; ok {
		return n, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// longestMatch returns the first phrase (phrases are sorted longest first)
// whose words prefix tokens, and the number of tokens it consumed.
func longestMatch(phrases []phrase, tokens []string) (phrase, int) {
	for _, p := range phrases {
		if len(p.words) > len(tokens) {
			continue
		}
		matched := true
		for j, w := range p.words {
			if !sameWord(w, tokens[j]) {
				matched = false
				break
			}
		}
		if matched {
			return p, len(p.words)
		}
	}
	return phrase{}, 0
}

func sameWord(want, got string) bool {
	if want == got {
		return true
	}
	stripped := strings.TrimRight(got, trailingMarks)
	return stripped != "" && stripped == strings.TrimRight(want, trailingMarks)
}

// Tokens splits an utterance into lower-case NFC words. Sentence punctuation
// is dropped and Devanagari digits are rewritten as ASCII.
func Tokens(text string) []string {
	text = strings.ToLower(norm.NFC.String(text))
	text = strings.Map(func(r rune) rune {
		switch {
		case r >= '०' && r <= '९':
			return '0' + (r - '०')
		case r == '।' || r == '॥' || (unicode.IsPunct(r) && r != '\''):
			return ' '
		}
		return r
	}, text)
	return strings.Fields(text)
}
