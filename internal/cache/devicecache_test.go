package cache

import (
	"sync"
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/globalsign/mgo/bson"
	"github.com/stretchr/testify/assert"
)

func TestDeviceCacheBijection(t *testing.T) {
	defer ResetCache()
	newDeviceCache(nil)

	d := models.Device{Id: bson.NewObjectId(), Name: "thermostat-1"}
	assert.NoError(t, Devices().Add(d))

	byId, ok := Devices().ForId(d.Id.Hex())
	assert.True(t, ok)
	assert.Equal(t, d.Name, byId.Name)

	byName, ok := Devices().ForName(d.Name)
	assert.True(t, ok)
	assert.Equal(t, d.Id.Hex(), byName.Id.Hex())

	assert.Error(t, Devices().Add(d), "duplicate id must be rejected")

	d.Name = "thermostat-1-renamed"
	assert.NoError(t, Devices().Update(d))
	if _, ok := Devices().ForName("thermostat-1"); ok {
		t.Error("stale name mapping should have been dropped on rename")
	}
	renamed, ok := Devices().ForName("thermostat-1-renamed")
	assert.True(t, ok)
	assert.Equal(t, d.Id.Hex(), renamed.Id.Hex())

	assert.NoError(t, Devices().RemoveByName("thermostat-1-renamed"))
	assert.Empty(t, Devices().All())
	if _, ok := Devices().ForName("thermostat-1-renamed"); ok {
		t.Error("name mapping must not survive removal")
	}
}

func TestDeviceCacheRemoveUnknown(t *testing.T) {
	defer ResetCache()
	newDeviceCache(nil)
	assert.Error(t, Devices().Remove("missing"))
	assert.Error(t, Devices().RemoveByName("missing"))
}

func TestDeviceCacheLockSerialisesSameDevice(t *testing.T) {
	defer ResetCache()
	newDeviceCache(nil)

	const id = "device-under-lock"
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := Devices().Lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter, "striped lock must serialise concurrent access to the same id")
}
