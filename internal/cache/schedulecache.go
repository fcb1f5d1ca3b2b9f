// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 IOTech Ltd
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sync"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/pkg/errors"
)

// scheduleCache and scheduleEventCache hold the Schedule/ScheduleEvent
// sets metadata has registered for this service (spec.md §4.B step 7,
// §3 "Both live in metadata; the SDK's scheduler holds the in-memory
// runtime timer"). Component F reads these to build its cron jobs.
type scheduleCache struct {
	lock      sync.Mutex
	schedules map[string]models.Schedule
}

type scheduleEventCache struct {
	lock   sync.Mutex
	events map[string]models.ScheduleEvent
}

var (
	schc = &scheduleCache{schedules: make(map[string]models.Schedule)}
	sec  = &scheduleEventCache{events: make(map[string]models.ScheduleEvent)}
)

type ScheduleCache interface {
	All() []models.Schedule
	ForName(name string) (models.Schedule, bool)
	Add(schedule models.Schedule) error
	Update(schedule models.Schedule) error
}

type ScheduleEventCache interface {
	All() []models.ScheduleEvent
	ForName(name string) (models.ScheduleEvent, bool)
	Add(event models.ScheduleEvent) error
	Update(event models.ScheduleEvent) error
	Remove(name string) error
}

func Schedules() ScheduleCache           { return schc }
func ScheduleEvents() ScheduleEventCache { return sec }

func newScheduleCache(schedules []models.Schedule) {
	schc.lock.Lock()
	defer schc.lock.Unlock()
	schc.schedules = make(map[string]models.Schedule, len(schedules))
	for _, s := range schedules {
		schc.schedules[s.Name] = s
	}
}

func newScheduleEventCache(events []models.ScheduleEvent) {
	sec.lock.Lock()
	defer sec.lock.Unlock()
	sec.events = make(map[string]models.ScheduleEvent, len(events))
	for _, e := range events {
		sec.events[e.Name] = e
	}
}

func (c *scheduleCache) All() []models.Schedule {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := make([]models.Schedule, 0, len(c.schedules))
	for _, s := range c.schedules {
		out = append(out, s)
	}
	return out
}

func (c *scheduleCache) ForName(name string) (models.Schedule, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	s, ok := c.schedules[name]
	return s, ok
}

func (c *scheduleCache) Add(schedule models.Schedule) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.schedules[schedule.Name]; exists {
		return errors.Errorf("schedule %s already present in cache", schedule.Name)
	}
	c.schedules[schedule.Name] = schedule
	return nil
}

func (c *scheduleCache) Update(schedule models.Schedule) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.schedules[schedule.Name] = schedule
	return nil
}

func (c *scheduleEventCache) All() []models.ScheduleEvent {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := make([]models.ScheduleEvent, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e)
	}
	return out
}

func (c *scheduleEventCache) ForName(name string) (models.ScheduleEvent, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	e, ok := c.events[name]
	return e, ok
}

func (c *scheduleEventCache) Add(event models.ScheduleEvent) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.events[event.Name]; exists {
		return errors.Errorf("schedule event %s already present in cache", event.Name)
	}
	c.events[event.Name] = event
	return nil
}

func (c *scheduleEventCache) Update(event models.ScheduleEvent) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.events[event.Name] = event
	return nil
}

func (c *scheduleEventCache) Remove(name string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.events[name]; !exists {
		return errors.Errorf("schedule event %s not present in cache", name)
	}
	delete(c.events, name)
	return nil
}
