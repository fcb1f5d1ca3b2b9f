package cache

import (
	"testing"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestScheduleAndScheduleEventCache(t *testing.T) {
	defer ResetCache()

	InitScheduleCache(
		[]models.Schedule{{Name: "daily", Frequency: "P1D"}},
		[]models.ScheduleEvent{{Name: "discovery-sweep", Schedule: "daily", Addressable: models.Addressable{Path: "/api/v1/discovery"}}},
	)

	sch, ok := Schedules().ForName("daily")
	assert.True(t, ok)
	assert.Equal(t, "P1D", sch.Frequency)

	evt, ok := ScheduleEvents().ForName("discovery-sweep")
	assert.True(t, ok)
	assert.Equal(t, "daily", evt.Schedule)

	assert.NoError(t, ScheduleEvents().Remove("discovery-sweep"))
	assert.Error(t, ScheduleEvents().Remove("discovery-sweep"))
}
