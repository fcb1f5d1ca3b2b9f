package transform

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"

	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

func TestForwardScaleAndOffset(t *testing.T) {
	cv, err := ds_models.NewFloat64Value(nil, 0, 10.0)
	assert.NoError(t, err)

	pv := models.PropertyValue{Scale: "2", Offset: "1"}
	out, valid, err := Forward(cv, pv)
	assert.NoError(t, err)
	assert.True(t, valid)

	v, err := out.Float64()
	assert.NoError(t, err)
	assert.Equal(t, 21.0, v) // (10*2)+1
}

func TestForwardClampsToMaximum(t *testing.T) {
	cv, err := ds_models.NewFloat64Value(nil, 0, 100.0)
	assert.NoError(t, err)

	pv := models.PropertyValue{Maximum: "50"}
	out, valid, err := Forward(cv, pv)
	assert.NoError(t, err)
	assert.False(t, valid)

	v, err := out.Float64()
	assert.NoError(t, err)
	assert.Equal(t, 50.0, v)
}

func TestInverseReversesForward(t *testing.T) {
	pv := models.PropertyValue{Scale: "2", Offset: "1"}

	cv, err := ds_models.NewFloat64Value(nil, 0, 10.0)
	assert.NoError(t, err)
	forwarded, _, err := Forward(cv, pv)
	assert.NoError(t, err)

	back, err := Inverse(forwarded, pv)
	assert.NoError(t, err)

	v, err := back.Float64()
	assert.NoError(t, err)
	assert.InDelta(t, 10.0, v, 0.0001)
}

func TestForwardPromotesIntegerToFloat32(t *testing.T) {
	cv, err := ds_models.NewInt16Value(nil, 0, 1234)
	assert.NoError(t, err)

	pv := models.PropertyValue{Scale: "0.1", Offset: "-40"}
	out, valid, err := Forward(cv, pv)
	assert.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, ds_models.Float32, out.Type)

	v, err := out.Float64()
	assert.NoError(t, err)
	assert.InDelta(t, 83.4, v, 0.0001)
}

func TestForwardMaskPreservesIntegerType(t *testing.T) {
	cv, err := ds_models.NewInt16Value(nil, 0, 0xFF)
	assert.NoError(t, err)

	pv := models.PropertyValue{Mask: "15"}
	out, valid, err := Forward(cv, pv)
	assert.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, ds_models.Int16, out.Type)

	v, err := out.Int64()
	assert.NoError(t, err)
	assert.Equal(t, int64(15), v)
}

func TestForwardPassesThroughNonNumeric(t *testing.T) {
	cv := ds_models.NewStringValue(nil, 0, "hello")

	out, valid, err := Forward(cv, models.PropertyValue{Scale: "2"})
	assert.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, cv, out)
}
