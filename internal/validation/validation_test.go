package validation

import (
	"testing"

	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct(t *testing.T) {
	v := New()

	t.Run("valid thread", func(t *testing.T) {
		err := v.Struct(domain.ThreadCreationData{Title: "t", Body: "b", ChannelId: 1})
		assert.NoError(t, err)
	})

	t.Run("every missing field reported", func(t *testing.T) {
		err := v.Struct(domain.ThreadCreationData{})
		ve, ok := internal_errors.AsValidation(err)
		require.True(t, ok)
		assert.Len(t, ve.Fields, 3)
		assert.Equal(t, "The title field is required.", ve.Fields["title"])
		assert.Equal(t, "The body field is required.", ve.Fields["body"])
		assert.Equal(t, "The channel id field is required.", ve.Fields["channel_id"])
	})

	t.Run("negative channel id", func(t *testing.T) {
		err := v.Struct(domain.ThreadCreationData{Title: "t", Body: "b", ChannelId: -5})
		ve, ok := internal_errors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, map[string]string{"channel_id": "The selected channel id is invalid."}, ve.Fields)
	})

	t.Run("json tag names win", func(t *testing.T) {
		type request struct {
			ReplyBody string `json:"body" validate:"required"`
		}
		ve, ok := internal_errors.AsValidation(v.Struct(request{}))
		require.True(t, ok)
		assert.True(t, ve.Has("body"))
	})

	t.Run("slug rule", func(t *testing.T) {
		err := v.Struct(domain.ChannelCreationData{Name: "Go", Slug: "Not A Slug"})
		ve, ok := internal_errors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "The slug format is invalid.", ve.Fields["slug"])

		assert.NoError(t, v.Struct(domain.ChannelCreationData{Name: "Go", Slug: "go-lang"}))
	})

	t.Run("credentials", func(t *testing.T) {
		err := v.Struct(domain.Credentials{Name: "JohnDoe", Email: "not-an-email", Password: "short"})
		ve, ok := internal_errors.AsValidation(err)
		require.True(t, ok)
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("password"))
		assert.False(t, ve.Has("name"))
	})
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "channel_id", snakeCase("ChannelId"))
	assert.Equal(t, "title", snakeCase("Title"))
}

