package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/engine/cache"
)

type item struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func TestLengthFingerprint(t *testing.T) {
	tests := []struct {
		name string
		data []item
		want string
	}{
		{name: "nil", data: nil, want: "2-0"},
		{name: "empty", data: []item{}, want: "2-0"},
		{name: "two ids", data: []item{{ID: "1"}, {ID: "2"}}, want: "25-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.LengthFingerprint(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLengthFingerprint_SameLengthCollides(t *testing.T) {
	a := []item{{ID: "1", Name: "abc"}}
	b := []item{{ID: "1", Name: "xyz"}}

	fa, err := cache.LengthFingerprint(a)
	require.NoError(t, err)
	fb, err := cache.LengthFingerprint(b)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
}

func TestContentFingerprint_DetectsSameLengthEdit(t *testing.T) {
	a := []item{{ID: "1", Name: "abc"}}
	b := []item{{ID: "1", Name: "xyz"}}

	fa, err := cache.ContentFingerprint(a)
	require.NoError(t, err)
	fb, err := cache.ContentFingerprint(b)
	require.NoError(t, err)

	assert.NotEqual(t, fa, fb)

	again, err := cache.ContentFingerprint(a)
	require.NoError(t, err)
	assert.Equal(t, fa, again)
}

func TestFingerprintFor(t *testing.T) {
	data := []item{{ID: "1", Name: "abc"}}

	length, err := cache.FingerprintFor[item](domain.FingerprintLength)(data)
	require.NoError(t, err)
	assert.Equal(t, "26-1", length)

	unknown, err := cache.FingerprintFor[item]("bogus")(data)
	require.NoError(t, err)
	assert.Equal(t, length, unknown)

	content, err := cache.FingerprintFor[item](domain.FingerprintContent)(data)
	require.NoError(t, err)
	assert.NotEqual(t, length, content)
	assert.Regexp(t, `^[0-9a-f]{16}-1$`, content)
}
