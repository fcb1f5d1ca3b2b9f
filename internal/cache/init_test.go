package cache

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/globalsign/mgo/bson"
	"github.com/stretchr/testify/assert"
)

func TestInitCachePopulatesDedupedProfiles(t *testing.T) {
	defer ResetCache()

	shared := models.DeviceProfile{Name: "shared-profile"}
	other := models.DeviceProfile{Name: "watcher-profile"}

	devices := []models.Device{
		{Id: bson.NewObjectId(), Name: "device-one", Profile: shared},
		{Id: bson.NewObjectId(), Name: "device-two", Profile: shared},
	}
	watchers := []models.ProvisionWatcher{
		{Name: "watcher-one", Profile: other},
	}

	newDeviceCache(devices)
	newWatcherCache(watchers)
	newProfileCache(distinctProfiles(devices, watchers))

	assert.Len(t, Devices().All(), 2)
	assert.Len(t, Watchers().All(), 1)
	assert.Len(t, Profiles().All(), 2, "profile shared by two devices must be cached once")

	if _, ok := Profiles().ForName("shared-profile"); !ok {
		t.Error("expected shared-profile in cache")
	}
	if _, ok := Profiles().ForName("watcher-profile"); !ok {
		t.Error("expected watcher-profile in cache")
	}
}

func TestResetCacheClearsAllMaps(t *testing.T) {
	newDeviceCache([]models.Device{{Id: bson.NewObjectId(), Name: "leftover"}})
	newProfileCache([]models.DeviceProfile{{Name: "leftover-profile"}})
	newWatcherCache([]models.ProvisionWatcher{{Name: "leftover-watcher"}})

	ResetCache()

	assert.Empty(t, Devices().All())
	assert.Empty(t, Profiles().All())
	assert.Empty(t, Watchers().All())
}
