package like

import (
	"testing"

	"github.com/skybi/rendezvous/internal/query"
	"github.com/stretchr/testify/assert"
)

func TestSpecification(t *testing.T) {
	spec := NewSpecification(1, 2)

	assert.Equal(t, query.And{
		query.Eq{Field: FieldLikerID, Value: int64(1)},
		query.Eq{Field: FieldLikeeID, Value: int64(2)},
	}, spec.Criteria())
	assert.Empty(t, spec.Includes())
	assert.False(t, spec.PagingEnabled())
	_, ordered := spec.Order()
	assert.False(t, ordered)
}
