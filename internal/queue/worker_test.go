package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandsync/api/internal/models"
)

func TestComposeMessageFooterAndTags(t *testing.T) {
	post := &models.ContentPost{
		Description: "New fall lineup in stores now.",
		Tags:        []string{"fall", "new arrivals"},
	}
	assignment := &models.PostAssignment{
		CustomFooter: "Visit us at Main St.",
	}

	msg := composeMessage(post, assignment)

	assert.Contains(t, msg, "New fall lineup in stores now.")
	assert.Contains(t, msg, "Visit us at Main St.")
	assert.Contains(t, msg, "#fall")
	assert.Contains(t, msg, "#newarrivals")
}

func TestComposeMessageCustomTagsOverride(t *testing.T) {
	post := &models.ContentPost{
		Description: "New fall lineup.",
		Tags:        []string{"fall"},
	}
	assignment := &models.PostAssignment{
		CustomTags: []string{"harborstore"},
	}

	msg := composeMessage(post, assignment)

	assert.Contains(t, msg, "#harborstore")
	assert.NotContains(t, msg, "#fall")
}

func TestComposeMessageBareDescription(t *testing.T) {
	post := &models.ContentPost{Description: "Plain update."}
	assignment := &models.PostAssignment{}

	assert.Equal(t, "Plain update.", composeMessage(post, assignment))
}

func TestPostTargetsPlatform(t *testing.T) {
	post := &models.ContentPost{Platforms: []string{models.PlatformFacebook, models.PlatformInstagram}}

	assert.True(t, postTargetsPlatform(post, models.PlatformFacebook))
	assert.True(t, postTargetsPlatform(post, models.PlatformInstagram))
	assert.False(t, postTargetsPlatform(post, models.PlatformGoogle))
}
