package startup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circutor/device-sdk-go/internal/common"
)

func TestExitCodeMapsKnownKinds(t *testing.T) {
	cases := map[common.ErrorKind]int{
		common.KindNoDeviceImpl:     2,
		common.KindNoDeviceName:     3,
		common.KindNoDeviceVersion:  4,
		common.KindBadConfig:        5,
		common.KindRemoteServerDown: 6,
		common.KindDriverUnstart:    7,
	}
	for kind, want := range cases {
		assert.Equal(t, want, exitCode(kind), "kind %s", kind)
	}
}

func TestExitCodeDefaultsToOneForUnmappedKind(t *testing.T) {
	assert.Equal(t, 1, exitCode(common.KindHTTPNotFound))
	assert.Equal(t, 1, exitCode(common.KindBadRequest))
	assert.Equal(t, 1, exitCode(""))
}
