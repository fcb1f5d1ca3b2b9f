package cache

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestWatcherCacheForIdentifier(t *testing.T) {
	defer ResetCache()
	newWatcherCache([]models.ProvisionWatcher{
		{Name: "modbus-watcher", Identifiers: map[string]string{"Model": "M210"}},
	})

	w, ok := Watchers().ForIdentifier("Model", "M210")
	assert.True(t, ok)
	assert.Equal(t, "modbus-watcher", w.Name)

	_, ok = Watchers().ForIdentifier("Model", "unknown")
	assert.False(t, ok)
}

func TestWatcherCacheAddRemove(t *testing.T) {
	defer ResetCache()
	newWatcherCache(nil)

	w := models.ProvisionWatcher{Name: "watcher-a"}
	assert.NoError(t, Watchers().Add(w))
	assert.Error(t, Watchers().Add(w))

	assert.NoError(t, Watchers().Remove("watcher-a"))
	assert.Error(t, Watchers().Remove("watcher-a"))
}
