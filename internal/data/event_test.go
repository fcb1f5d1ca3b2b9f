package data

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"

	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

func TestBuildEventProducesOneReadingPerResult(t *testing.T) {
	reqs := []ds_models.CommandRequest{
		{DeviceResource: models.DeviceObject{Name: "temperature"}},
		{DeviceResource: models.DeviceObject{Name: "humidity"}},
	}
	tempVal, err := ds_models.NewFloat32Value(nil, 1000, 21.5)
	assert.NoError(t, err)
	humVal, err := ds_models.NewInt32Value(nil, 0, 55)
	assert.NoError(t, err)

	event, err := BuildEvent("thermostat-1", reqs, []*ds_models.CommandValue{tempVal, humVal})
	assert.NoError(t, err)
	assert.Equal(t, "thermostat-1", event.Device)
	assert.Len(t, event.Readings, 2)

	assert.Equal(t, "temperature", event.Readings[0].Name)
	assert.Equal(t, int64(1000), event.Readings[0].Origin)
	assert.Equal(t, "Float32", event.Readings[0].ValueType)

	assert.Equal(t, "humidity", event.Readings[1].Name)
	assert.NotZero(t, event.Readings[1].Origin, "zero origin must be defaulted to now")
}

func TestBuildEventRejectsMismatchedLengths(t *testing.T) {
	_, err := BuildEvent("thermostat-1", []ds_models.CommandRequest{{}}, nil)
	assert.Error(t, err)
}

func TestBuildEventSetsMediaTypeForBinary(t *testing.T) {
	reqs := []ds_models.CommandRequest{
		{DeviceResource: models.DeviceObject{
			Name: "snapshot",
			Properties: models.ProfileProperty{
				Value: models.PropertyValue{MediaType: "image/jpeg"},
			},
		}},
	}
	bv, err := ds_models.NewBinaryValue(nil, 0, []byte{0x01, 0x02})
	assert.NoError(t, err)

	event, err := BuildEvent("camera-1", reqs, []*ds_models.CommandValue{bv})
	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", event.Readings[0].MediaType)
}
