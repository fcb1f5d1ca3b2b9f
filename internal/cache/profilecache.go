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

// profileCache mutations are rare (new profile files, metadata callback
// updates) and short, so a plain mutex is enough; spec.md §4.C calls this
// out explicitly rather than paying for a second RWMutex.
type profileCache struct {
	lock     sync.Mutex
	profiles map[string]models.DeviceProfile
}

var pc = &profileCache{profiles: make(map[string]models.DeviceProfile)}

type ProfileCache interface {
	All() []models.DeviceProfile
	ForName(name string) (models.DeviceProfile, bool)
	Add(profile models.DeviceProfile) error
	Update(profile models.DeviceProfile) error
}

func Profiles() ProfileCache {
	return pc
}

func newProfileCache(profiles []models.DeviceProfile) {
	pc.lock.Lock()
	defer pc.lock.Unlock()
	pc.profiles = make(map[string]models.DeviceProfile, len(profiles))
	for _, p := range profiles {
		pc.profiles[p.Name] = p
	}
}

func (c *profileCache) All() []models.DeviceProfile {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := make([]models.DeviceProfile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p)
	}
	return out
}

func (c *profileCache) ForName(name string) (models.DeviceProfile, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	p, ok := c.profiles[name]
	return p, ok
}

func (c *profileCache) Add(profile models.DeviceProfile) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.profiles[profile.Name]; exists {
		return errors.Errorf("profile %s already present in cache", profile.Name)
	}
	c.profiles[profile.Name] = profile
	return nil
}

func (c *profileCache) Update(profile models.DeviceProfile) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.profiles[profile.Name] = profile
	return nil
}
