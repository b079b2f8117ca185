package translation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChat "translates" by tagging every string with the target language.
type fakeChat struct {
	requests []openai.ChatCompletionRequest
	reply    func(sentences []string, system string) string
	err      error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}

	var in []string
	if err := json.Unmarshal([]byte(req.Messages[1].Content), &in); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	var content string
	if f.reply != nil {
		content = f.reply(in, req.Messages[0].Content)
	} else {
		lang := "da"
		if strings.Contains(req.Messages[0].Content, "to English") {
			lang = "en"
		}
		out := make([]string, len(in))
		for i, s := range in {
			out[i] = lang + "(" + s + ")"
		}
		b, _ := json.Marshal(out)
		content = string(b)
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}}}, nil
}

func newTranslator(t *testing.T, chat ChatClient, batch int) *BackTranslator {
	t.Helper()
	b, err := NewBackTranslator(&Config{Model: "m", SourceLanguage: "English", PivotLanguage: "Danish", BatchSize: batch}, chat)
	require.NoError(t, err)
	return b
}

func TestAugmentRoundTrips(t *testing.T) {
	chat := &fakeChat{}
	b := newTranslator(t, chat, 2)

	out, err := b.Augment(context.Background(), []string{"one", "two", "three"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en(da(one))", "en(da(two))", "en(da(three))"}, out)

	// two batches, each translated there and back
	require.Len(t, chat.requests, 4)
	assert.Contains(t, chat.requests[0].Messages[0].Content, "from English to Danish")
	assert.Contains(t, chat.requests[1].Messages[0].Content, "from Danish to English")
}

func TestAugmentEmpty(t *testing.T) {
	chat := &fakeChat{}
	out, err := newTranslator(t, chat, 8).Augment(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, chat.requests)
}

func TestAugmentRejectsMisalignedReply(t *testing.T) {
	chat := &fakeChat{reply: func([]string, string) string { return `["only one"]` }}

	_, err := newTranslator(t, chat, 8).Augment(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestAugmentPropagatesClientErrors(t *testing.T) {
	boom := errors.New("rate limited")
	_, err := newTranslator(t, &fakeChat{err: boom}, 8).Augment(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, boom)
}

func TestParseReplyStripsCodeFence(t *testing.T) {
	out, err := parseReply("```json\n[\"a\", \"b\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	_, err = parseReply("Here you go: a, b")
	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestConfigValidate(t *testing.T) {
	_, err := NewBackTranslator(&Config{Model: "m", SourceLanguage: "English", PivotLanguage: "English"}, &fakeChat{})
	assert.Error(t, err)

	_, err = NewBackTranslator(&Config{SourceLanguage: "English", PivotLanguage: "Danish"}, &fakeChat{})
	assert.Error(t, err)
}
