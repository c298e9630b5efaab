package schema

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Content  *string `json:"content" required:"true" minLength:"1" maxLength:"10"`
	Count    *int    `json:"count" min:"1" max:"5"`
	Optional *string `json:"optional"`
	Nested   struct {
		Value int `json:"value" min:"0"`
	} `json:"nested"`
}

func unmarshal(t *testing.T, body string) (*testPayload, []*Error) {
	request := httptest.NewRequest("POST", "/", strings.NewReader(body))
	payload, errs, err := UnmarshalBody[testPayload](request)
	require.NoError(t, err)
	return payload, errs
}

func errorTypes(errs []*Error) []string {
	types := make([]string, 0, len(errs))
	for _, err := range errs {
		types = append(types, err.Type)
	}
	return types
}

func TestUnmarshalBodyValid(t *testing.T) {
	payload, errs := unmarshal(t, `{"content":"hello","count":3,"nested":{"value":1}}`)
	assert.Empty(t, errs)
	assert.Equal(t, "hello", *payload.Content)
	assert.Equal(t, 3, *payload.Count)
	assert.Nil(t, payload.Optional)
}

func TestUnmarshalBodyMissingRequired(t *testing.T) {
	_, errs := unmarshal(t, `{"count":3}`)
	require.Len(t, errs, 1)
	assert.Equal(t, "validation.requestBody.parameter.missing", errs[0].Type)
	assert.Equal(t, "content", errs[0].Details["parameter"])
}

func TestUnmarshalBodyRanges(t *testing.T) {
	_, errs := unmarshal(t, `{"content":"   ","count":9,"nested":{"value":-1}}`)
	assert.Equal(t, []string{
		"validation.requestBody.parameter.string.lengthOutOfRange",
		"validation.requestBody.parameter.number.outOfRange",
		"validation.requestBody.parameter.number.outOfRange",
	}, errorTypes(errs))
	assert.Equal(t, "nested.value", errs[2].Details["parameter"])

	_, errs = unmarshal(t, `{"content":"this is far too long"}`)
	require.Len(t, errs, 1)
	assert.Equal(t, int64(10), errs[0].Details["max"])
}

func TestUnmarshalBodyInvalidInput(t *testing.T) {
	_, errs := unmarshal(t, `{"content":`)
	assert.Equal(t, []string{"validation.requestBody.invalidJSON"}, errorTypes(errs))

	_, errs = unmarshal(t, `{"content":5}`)
	assert.Equal(t, []string{"validation.requestBody.parameter.invalidType"}, errorTypes(errs))
}
