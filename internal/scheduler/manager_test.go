package scheduler

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestCronSpecConvertsFrequency(t *testing.T) {
	spec, err := cronSpec(models.Schedule{Name: "hourly", Frequency: "PT1H"})
	assert.NoError(t, err)
	assert.Equal(t, "@every 3600s", spec)
}

func TestCronSpecRejectsInvalidFrequency(t *testing.T) {
	_, err := cronSpec(models.Schedule{Name: "broken", Frequency: "not-iso8601"})
	assert.Error(t, err)
}
