// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package status provides a small publish/subscribe channel for
// long-running operation progress.  Publishers post full Status
// values under a key; subscribers receive every update in the order
// they subscribed.
package status

import "sync"

// Status is one progress report.  Progress is in [0, 1]; Done marks
// the terminal update for a key.
type Status struct {
	Key      string
	Message  string
	Progress float32
	Done     bool
}

// Channel fans Status updates out to subscribers.  The zero value is
// ready to use.  Safe for concurrent use.
type Channel struct {
	mu      sync.Mutex
	nextID  int
	subs    []subscriber
	current map[string]Status
}

type subscriber struct {
	id int
	fn func(Status)
}

// Subscribe registers fn to receive every subsequent update and
// returns an id for Unsubscribe.  fn is called synchronously from the
// publisher's goroutine and must not block.
func (c *Channel) Subscribe(fn func(Status)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return id
}

// Unsubscribe removes the subscriber with the given id.  Unknown ids
// are ignored.
func (c *Channel) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Update publishes a message for key without changing completion
// state.
func (c *Channel) Update(key, message string) {
	c.publish(Status{Key: key, Message: message})
}

// UpdateProgress publishes a message with a progress fraction.
func (c *Channel) UpdateProgress(key, message string, progress float32) {
	c.publish(Status{Key: key, Message: message, Progress: progress})
}

// Finish publishes the terminal update for key.
func (c *Channel) Finish(key, message string) {
	c.publish(Status{Key: key, Message: message, Progress: 1, Done: true})
}

// Current returns the most recent Status published under key, and
// whether one exists.
func (c *Channel) Current(key string) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.current[key]
	return s, ok
}

func (c *Channel) publish(s Status) {
	c.mu.Lock()
	if c.current == nil {
		c.current = map[string]Status{}
	}
	c.current[s.Key] = s
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, sub := range subs {
		sub.fn(s)
	}
}
