package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID_Format(t *testing.T) {
	id := NewID(ModelListing)

	assert.True(t, strings.HasPrefix(id.String(), "igt.listing."))
	assert.Len(t, id.Suffix(), 24)
	assert.Equal(t, ModelListing, id.Kind())
	assert.True(t, id.Valid())
	assert.True(t, id.Is(ModelListing))
	assert.False(t, id.Is(ModelUser))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[TaggedID]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID(ModelUser)
		_, dup := seen[id]
		assert.False(t, dup, "повтор идентификатора %s", id)
		seen[id] = struct{}{}
	}
}

func TestTaggedID_Invalid(t *testing.T) {
	cases := []TaggedID{
		"",
		"igt.user",
		"px.user.0123456789abcdef01234567",
		"igt..0123456789abcdef01234567",
		"igt.user.xyz",
		"igt.user.0123456789abcdef0123456z",
	}
	for _, id := range cases {
		assert.False(t, id.Valid(), "ожидали невалидный id %q", id)
	}
	assert.Equal(t, Model(""), TaggedID("broken").Kind())
	assert.Equal(t, "", TaggedID("broken").Suffix())
}

func TestListing_Expired(t *testing.T) {
	l := Listing{ExpiresAt: 1000}
	assert.False(t, l.Expired(999))
	assert.True(t, l.Expired(1000))
	assert.False(t, Listing{}.Expired(5000))
}

func TestSponsor_Campaign(t *testing.T) {
	s := Sponsor{Campaigns: []SponsorCampaign{{Key: "spring-sale"}, {Key: "summer"}}}

	c, ok := s.Campaign("summer")
	assert.True(t, ok)
	assert.Equal(t, "summer", c.Key)

	_, ok = s.Campaign("winter")
	assert.False(t, ok)
}
