package service

import (
	"testing"

	"github.com/Circutor/edgex/pkg/clients/logger"
	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"

	"github.com/circutor/device-sdk-go/internal/common"
	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// fakeDriver is a minimal ProtocolDriver satisfying the interface for
// construction tests that never call Start.
type fakeDriver struct{}

func (fakeDriver) Initialize(lc logger.LoggingClient, asyncCh chan<- *ds_models.AsyncValues) error {
	return nil
}
func (fakeDriver) HandleReadCommands(deviceName string, addr *models.Addressable, reqs []ds_models.CommandRequest) ([]*ds_models.CommandValue, error) {
	return nil, nil
}
func (fakeDriver) HandleWriteCommands(deviceName string, addr *models.Addressable, reqs []ds_models.CommandRequest, params []*ds_models.CommandValue) error {
	return nil
}
func (fakeDriver) DisconnectDevice(deviceName string, addr *models.Addressable) error { return nil }
func (fakeDriver) Discover() error                                                    { return nil }
func (fakeDriver) Stop(force bool) error                                              { return nil }

func TestNewRejectsNilDriver(t *testing.T) {
	svc, appErr := New("svc", "1.0", nil)
	assert.Nil(t, svc)
	assert.NotNil(t, appErr)
	assert.Equal(t, common.KindNoDeviceImpl, appErr.Kind())
}

func TestNewRejectsEmptyName(t *testing.T) {
	svc, appErr := New("", "1.0", fakeDriver{})
	assert.Nil(t, svc)
	assert.NotNil(t, appErr)
	assert.Equal(t, common.KindNoDeviceName, appErr.Kind())
}

func TestNewRejectsEmptyVersion(t *testing.T) {
	svc, appErr := New("svc", "", fakeDriver{})
	assert.Nil(t, svc)
	assert.NotNil(t, appErr)
	assert.Equal(t, common.KindNoDeviceVersion, appErr.Kind())
}

func TestNewAcceptsValidArgs(t *testing.T) {
	svc, appErr := New("svc", "1.0", fakeDriver{})
	assert.Nil(t, appErr)
	assert.NotNil(t, svc)
	assert.Equal(t, "svc", svc.Name)
	assert.Equal(t, "1.0", svc.Version)
}

func TestResourceForNameFindsMatch(t *testing.T) {
	profile := models.DeviceProfile{
		DeviceResources: []models.DeviceObject{
			{Name: "temperature"},
			{Name: "humidity"},
		},
	}

	resource, found := resourceForName(profile, "humidity")
	assert.True(t, found)
	assert.Equal(t, "humidity", resource.Name)

	_, found = resourceForName(profile, "pressure")
	assert.False(t, found)
}
