package cache

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestProfileCacheAddUpdate(t *testing.T) {
	defer ResetCache()
	newProfileCache(nil)

	p := models.DeviceProfile{Name: "counter-profile"}
	assert.NoError(t, Profiles().Add(p))
	assert.Error(t, Profiles().Add(p), "duplicate profile name must be rejected")

	p.Description = "revised"
	assert.NoError(t, Profiles().Update(p))

	got, ok := Profiles().ForName("counter-profile")
	assert.True(t, ok)
	assert.Equal(t, "revised", got.Description)
}
