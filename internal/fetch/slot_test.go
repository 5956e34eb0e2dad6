package fetch

import (
	"sync"
	"testing"
)

func TestSlotLatestWins(t *testing.T) {
	var slot Slot

	first := slot.Begin()
	second := slot.Begin()

	// The overlapping earlier refresh finishes after the later one started.
	if slot.Commit(first) {
		t.Error("superseded ticket must not commit")
	}
	if !slot.Commit(second) {
		t.Error("newest ticket must commit")
	}
}

func TestSlotCommitOnce(t *testing.T) {
	var slot Slot

	ticket := slot.Begin()
	if !slot.Commit(ticket) {
		t.Fatal("first commit of the newest ticket must win")
	}
	if slot.Commit(ticket) {
		t.Error("second commit of the same ticket must lose")
	}
}

func TestSlotInOrderRefreshes(t *testing.T) {
	var slot Slot

	for i := 0; i < 5; i++ {
		ticket := slot.Begin()
		if !slot.Commit(ticket) {
			t.Fatalf("refresh %d: sequential ticket must commit", i)
		}
	}
}

func TestSlotConcurrent(t *testing.T) {
	var slot Slot
	var wg sync.WaitGroup

	commits := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			commits <- slot.Commit(slot.Begin())
		}()
	}
	wg.Wait()
	close(commits)

	// Concurrency aside, at least one refresh lands and none race past the
	// newest-ticket rule in a way the mutex would catch under -race.
	won := 0
	for ok := range commits {
		if ok {
			won++
		}
	}
	if won == 0 {
		t.Error("no refresh committed")
	}
}
