// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsJob(t *testing.T) {
	s := New(testLogger())
	var runs atomic.Int64
	if err := s.AddJob("@every 50ms", "counter", func(context.Context) {
		runs.Add(1)
	}); err != nil {
		t.Fatalf("AddJob: %v", err)
	}

	s.Start()
	defer s.Stop()

	deadline := time.After(3 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := New(testLogger())
	if err := s.AddJob("not a schedule", "bad", func(context.Context) {}); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestSchedulerContainsPanic(t *testing.T) {
	s := New(testLogger())
	var after atomic.Bool
	if err := s.AddJob("@every 50ms", "panics", func(context.Context) {
		panic("boom")
	}); err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if err := s.AddJob("@every 50ms", "survives", func(context.Context) {
		after.Store(true)
	}); err != nil {
		t.Fatalf("AddJob: %v", err)
	}

	s.Start()
	defer s.Stop()

	deadline := time.After(3 * time.Second)
	for !after.Load() {
		select {
		case <-deadline:
			t.Fatal("second job never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
