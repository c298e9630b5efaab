package validation

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryNumber(t *testing.T) {
	request := httptest.NewRequest("GET", "/?pageSize=10&pageIndex=abc&minAge=5", nil)

	value, err := QueryNumber(request, "pageSize", false, 6, 1, 50)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), value)

	value, err = QueryNumber(request, "missing", false, 6, 1, 50)
	assert.Nil(t, err)
	assert.Equal(t, int64(6), value)

	_, err = QueryNumber(request, "missing", true, 6, 1, 50)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.missing", err.Type)

	_, err = QueryNumber(request, "pageIndex", false, 1, 1, 100)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.invalidType", err.Type)

	_, err = QueryNumber(request, "minAge", false, 18, 18, 99)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.number.outOfRange", err.Type)
}

func TestOptionalQueryNumber(t *testing.T) {
	request := httptest.NewRequest("GET", "/?genderId=2", nil)

	value, err := OptionalQueryNumber(request, "genderId", 1, 100)
	assert.Nil(t, err)
	require.NotNil(t, value)
	assert.Equal(t, int64(2), *value)

	value, err = OptionalQueryNumber(request, "statusId", 1, 100)
	assert.Nil(t, err)
	assert.Nil(t, value)
}

func TestQueryBool(t *testing.T) {
	request := httptest.NewRequest("GET", "/?likers=true&likees=maybe", nil)

	value, err := QueryBool(request, "likers", false)
	assert.Nil(t, err)
	assert.True(t, value)

	value, err = QueryBool(request, "missing", false)
	assert.Nil(t, err)
	assert.False(t, value)

	_, err = QueryBool(request, "likees", false)
	require.NotNil(t, err)
	assert.Equal(t, "boolean", err.Details["expected_type"])
}

func TestPathID(t *testing.T) {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "42")
	routeCtx.URLParams.Add("zero", "0")
	routeCtx.URLParams.Add("text", "abc")
	request := httptest.NewRequest("GET", "/", nil)
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeCtx))

	id, err := PathID(request, "id")
	assert.Nil(t, err)
	assert.Equal(t, int64(42), id)

	for _, key := range []string{"zero", "text", "absent"} {
		_, err = PathID(request, key)
		require.NotNil(t, err, key)
		assert.Equal(t, "validation.path.parameter.invalidID", err.Type)
	}
}
