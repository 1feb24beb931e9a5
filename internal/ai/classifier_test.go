package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassifier(url string) *OpenAIClassifier {
	return &OpenAIClassifier{
		apiURL:      url,
		apiKey:      "test-key",
		model:       "gpt-4",
		visionModel: "gpt-4-vision",
		client:      &http.Client{Timeout: 5 * time.Second},
	}
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestClassifyTextParsesVerdict(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(chatReply(`{"labels":["toxicity"],"scores":{"toxicity":0.82},"overall_risk":0.82}`)))
	}))
	defer srv.Close()

	a, err := testClassifier(srv.URL).ClassifyText(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"toxicity"}, a.Labels)
	assert.InDelta(t, 0.82, a.OverallRisk, 1e-9)
	assert.NotEmpty(t, a.Raw)
}

func TestClassifyTextStripsCodeFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("```json\n{\"labels\":[],\"scores\":{},\"overall_risk\":0.1}\n```")))
	}))
	defer srv.Close()

	a, err := testClassifier(srv.URL).ClassifyText(context.Background(), "some text")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, a.OverallRisk, 1e-9)
}

func TestClassifyTextClampsRisk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(`{"labels":[],"scores":{},"overall_risk":1.7}`)))
	}))
	defer srv.Close()

	a, err := testClassifier(srv.URL).ClassifyText(context.Background(), "some text")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, a.OverallRisk, 1e-9)
}

func TestClassifyTextUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClassifier(srv.URL).ClassifyText(context.Background(), "some text")
	assert.Error(t, err)
}

func TestClassifyTextGarbageVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("I'm sorry, I cannot help with that.")))
	}))
	defer srv.Close()

	_, err := testClassifier(srv.URL).ClassifyText(context.Background(), "some text")
	assert.Error(t, err)
}

func TestUnavailableClassifier(t *testing.T) {
	c := Unavailable{}
	assert.False(t, c.Configured())

	_, err := c.ClassifyText(context.Background(), "text")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = c.ClassifyImage(context.Background(), "https://example.com/img.jpg")
	assert.ErrorIs(t, err, ErrUnavailable)
}
