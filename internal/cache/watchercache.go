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

// watcherCache holds the ProvisionWatcher set metadata has registered for
// this service. The SDK's discovery path only calls the driver's Discover
// and does not consult this cache to classify found devices. Mutated only by
// startup reconciliation and the metadata callback, so a plain mutex
// matches profileCache's reasoning.
type watcherCache struct {
	lock     sync.Mutex
	watchers map[string]models.ProvisionWatcher // name -> watcher
}

var wc = &watcherCache{watchers: make(map[string]models.ProvisionWatcher)}

type WatcherCache interface {
	All() []models.ProvisionWatcher
	ForName(name string) (models.ProvisionWatcher, bool)
	ForIdentifier(key, value string) (models.ProvisionWatcher, bool)
	Add(watcher models.ProvisionWatcher) error
	Update(watcher models.ProvisionWatcher) error
	Remove(name string) error
}

func Watchers() WatcherCache {
	return wc
}

func newWatcherCache(watchers []models.ProvisionWatcher) {
	wc.lock.Lock()
	defer wc.lock.Unlock()
	wc.watchers = make(map[string]models.ProvisionWatcher, len(watchers))
	for _, w := range watchers {
		wc.watchers[w.Name] = w
	}
}

func (c *watcherCache) All() []models.ProvisionWatcher {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := make([]models.ProvisionWatcher, 0, len(c.watchers))
	for _, w := range c.watchers {
		out = append(out, w)
	}
	return out
}

func (c *watcherCache) ForName(name string) (models.ProvisionWatcher, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	w, ok := c.watchers[name]
	return w, ok
}

// ForIdentifier returns the first watcher whose Identifiers map contains
// key=value; with several matches, which one is returned is not defined.
func (c *watcherCache) ForIdentifier(key, value string) (models.ProvisionWatcher, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, w := range c.watchers {
		if w.Identifiers[key] == value {
			return w, true
		}
	}
	return models.ProvisionWatcher{}, false
}

func (c *watcherCache) Add(watcher models.ProvisionWatcher) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.watchers[watcher.Name]; exists {
		return errors.Errorf("provision watcher %s already present in cache", watcher.Name)
	}
	c.watchers[watcher.Name] = watcher
	return nil
}

func (c *watcherCache) Update(watcher models.ProvisionWatcher) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.watchers[watcher.Name] = watcher
	return nil
}

func (c *watcherCache) Remove(name string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, exists := c.watchers[name]; !exists {
		return errors.Errorf("provision watcher %s not present in cache", name)
	}
	delete(c.watchers, name)
	return nil
}
