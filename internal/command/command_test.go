package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/shoplist/internal/domain"
	"github.com/vbonduro/shoplist/internal/lexicon"
	"github.com/vbonduro/shoplist/internal/nlp"
	"github.com/vbonduro/shoplist/internal/nlp/keyword"
	"github.com/vbonduro/shoplist/internal/service"
)

type fakeList struct {
	adds     []service.AddInput
	removes  []service.RemoveInput
	searches []service.SearchInput
	err      error
}

func (f *fakeList) Add(_ context.Context, in service.AddInput) (*domain.Item, error) {
	f.adds = append(f.adds, in)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Item{ID: 1, Owner: in.Owner, Name: in.Name, Quantity: "1"}, nil
}

func (f *fakeList) Remove(_ context.Context, in service.RemoveInput) (*service.RemoveResult, error) {
	f.removes = append(f.removes, in)
	if f.err != nil {
		return nil, f.err
	}
	return &service.RemoveResult{Action: domain.ActionRemove, ItemName: in.Name}, nil
}

func (f *fakeList) Search(_ context.Context, in service.SearchInput) ([]*domain.Item, error) {
	f.searches = append(f.searches, in)
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

type fakeTranslator struct {
	out     string
	err     error
	sources []string
}

func (f *fakeTranslator) Translate(_ context.Context, _ string, sourceLang string) (string, error) {
	f.sources = append(f.sources, sourceLang)
	return f.out, f.err
}

type fakeExtractor struct {
	intent nlp.Intent
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(context.Context, string) (nlp.Intent, error) {
	f.calls++
	if f.err != nil {
		return nlp.Unknown, f.err
	}
	return f.intent, nil
}

type recordingSink struct {
	lines []string
	err   error
}

func (s *recordingSink) Record(lang, phrase string) error {
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, "["+lang+"] "+phrase)
	return nil
}

type fixture struct {
	list       *fakeList
	translator *fakeTranslator
	extractor  *fakeExtractor
	sink       *recordingSink
	lex        *lexicon.Lexicon
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return &fixture{
		list:       &fakeList{},
		translator: &fakeTranslator{},
		extractor:  &fakeExtractor{intent: nlp.Unknown},
		sink:       &recordingSink{},
		lex:        lex,
	}
}

func (f *fixture) interpreter(translator nlp.Translator) *Interpreter {
	if translator == nil {
		translator = f.translator
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewInterpreter(f.list, translator, f.extractor, f.lex, f.sink, logger)
}

func TestExecuteEnglishAdd(t *testing.T) {
	f := newFixture(t)
	res, err := f.interpreter(nil).Execute(context.Background(), "alice", "Add 2 Apples", "en-US")
	require.NoError(t, err)

	require.Len(t, f.list.adds, 1)
	assert.Equal(t, service.AddInput{Owner: "alice", Name: "apples", Quantity: 2}, f.list.adds[0])
	assert.NotNil(t, res.Item)
	assert.Empty(t, f.translator.sources, "english is never translated")
}

func TestExecuteEnglishDefaultsWhenLangEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.interpreter(nil).Execute(context.Background(), "", "remove 3 bananas", "")
	require.NoError(t, err)

	require.Len(t, f.list.removes, 1)
	assert.Equal(t, service.RemoveInput{Owner: "", Name: "bananas", Quantity: 3}, f.list.removes[0])
}

func TestExecuteSearchReturnsEmptySlice(t *testing.T) {
	f := newFixture(t)
	res, err := f.interpreter(nil).Execute(context.Background(), "bob", "find bread", "en")
	require.NoError(t, err)

	require.Len(t, f.list.searches, 1)
	assert.Equal(t, "bread", f.list.searches[0].Query)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestEnglishFallsBackToExtractor(t *testing.T) {
	f := newFixture(t)
	f.extractor.intent = nlp.Intent{Kind: nlp.KindAdd, Name: "Milk", Quantity: "1"}

	intent, err := f.interpreter(nil).Interpret(context.Background(), "please", "en")
	require.NoError(t, err)
	assert.Equal(t, 1, f.extractor.calls)
	assert.Equal(t, nlp.Intent{Kind: nlp.KindAdd, Name: "milk", Quantity: "1"}, intent)
	assert.Empty(t, f.sink.lines)
}

func TestHindiThroughGlossary(t *testing.T) {
	f := newFixture(t)
	in := f.interpreter(keyword.NewGlossary(f.lex))

	_, err := in.Execute(context.Background(), "alice", "दो सेब हटाओ", "hi")
	require.NoError(t, err)
	require.Len(t, f.list.removes, 1)
	assert.Equal(t, service.RemoveInput{Owner: "alice", Name: "apple", Quantity: 2}, f.list.removes[0])
}

func TestBadTranslationUsesOfflineParser(t *testing.T) {
	f := newFixture(t)
	f.translator.out = "joins apples"

	intent, err := f.interpreter(nil).Interpret(context.Background(), "सेब जोड़ो", "hi")
	require.NoError(t, err)
	assert.Equal(t, nlp.Intent{Kind: nlp.KindAdd, Name: "apple", Quantity: "1"}, intent)
	assert.Equal(t, 0, f.extractor.calls)
}

func TestUntranslatedTextIsNotTrusted(t *testing.T) {
	f := newFixture(t)
	f.translator.out = "add सेब"

	intent, err := f.interpreter(nil).Interpret(context.Background(), "सेब जोड़ो", "hi")
	require.NoError(t, err)
	assert.Equal(t, "apple", intent.Name)
}

func TestTranslationErrorUsesOfflineParser(t *testing.T) {
	f := newFixture(t)
	f.translator.err = errors.New("backend down")

	intent, err := f.interpreter(nil).Interpret(context.Background(), "दूध निकालो", "hi-IN")
	require.NoError(t, err)
	assert.Equal(t, nlp.Intent{Kind: nlp.KindRemove, Name: "milk", Quantity: "1"}, intent)
	assert.Equal(t, []string{"hi"}, f.translator.sources)
}

func TestOfflineMissFallsBackToExtractor(t *testing.T) {
	f := newFixture(t)
	f.translator.out = "common discoveries"
	f.extractor.intent = nlp.Intent{Kind: nlp.KindSearch, Name: "honey", Quantity: "1"}

	intent, err := f.interpreter(nil).Interpret(context.Background(), "शहद", "hi")
	require.NoError(t, err)
	assert.Equal(t, 1, f.extractor.calls)
	assert.Equal(t, nlp.KindSearch, intent.Kind)
}

func TestUnmappedPhraseIsAuditedAndRejected(t *testing.T) {
	f := newFixture(t)
	f.translator.out = "pour"
	f.extractor.err = errors.New("model offline")

	_, err := f.interpreter(nil).Execute(context.Background(), "alice", "कुछ भी", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"[hi] कुछ भी"}, f.sink.lines)
	assert.Empty(t, f.list.adds)
}

func TestExecuteRejectsEmptyText(t *testing.T) {
	f := newFixture(t)
	_, err := f.interpreter(nil).Execute(context.Background(), "alice", "   ", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.sink.lines)
}

func TestExecuteWrapsServiceErrors(t *testing.T) {
	f := newFixture(t)
	f.list.err = &service.NotFoundError{Name: "kiwi"}

	_, err := f.interpreter(nil).Execute(context.Background(), "alice", "remove kiwi", "en")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestQuantityOf(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: " 4 ", want: 4},
		{in: "lots", want: 1},
		{in: "0", want: 1},
		{in: "", want: 1},
		{in: "1000000", want: domain.MaxQuantity},
		{in: "1000001", wantErr: true},
		{in: "99999999999999999999999", wantErr: true},
	}
	for _, tt := range tests {
		got, err := quantityOf(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidInput, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestExecuteRejectsHugeSpokenQuantity(t *testing.T) {
	f := newFixture(t)
	_, err := f.interpreter(nil).Execute(context.Background(), "alice", "add 99999999999999999999999 apples", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.list.adds)
}

func TestTranslate(t *testing.T) {
	f := newFixture(t)
	f.translator.out = "add milk"
	in := f.interpreter(nil)

	out, err := in.Translate(context.Background(), "दूध जोड़ो", "")
	require.NoError(t, err)
	assert.Equal(t, "add milk", out)
	assert.Equal(t, []string{"auto"}, f.translator.sources)

	_, err = in.Translate(context.Background(), " ", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.translator.err = errors.New("timeout")
	_, err = in.Translate(context.Background(), "दूध", "hi")
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestLogUnmapped(t *testing.T) {
	f := newFixture(t)
	in := f.interpreter(nil)

	require.NoError(t, in.LogUnmapped("hi", "आलू"))
	assert.Equal(t, []string{"[hi] आलू"}, f.sink.lines)

	assert.ErrorIs(t, in.LogUnmapped("hi", ""), domain.ErrInvalidInput)

	f.sink.err = errors.New("disk full")
	assert.Error(t, in.LogUnmapped("hi", "आलू"))
}
