package eventlog

import (
	"fmt"
	"sync"
	"testing"
)

func TestLogAddAndRecent(t *testing.T) {
	l := New(3)

	l.Add(Event{Level: LevelWarning, Message: "first"})
	l.Add(Event{Level: LevelError, Message: "second"})

	if l.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", l.Len())
	}

	recent := l.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("Recent(10) returned %d events; want 2", len(recent))
	}
	if recent[0].Message != "second" || recent[1].Message != "first" {
		t.Errorf("Recent order = [%s, %s]; want newest first", recent[0].Message, recent[1].Message)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in when zero")
	}
}

func TestLogEvictsOldest(t *testing.T) {
	l := New(3)
	for i := 1; i <= 5; i++ {
		l.Add(Event{Level: LevelWarning, Message: fmt.Sprintf("event-%d", i)})
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", l.Len())
	}

	recent := l.Recent(3)
	want := []string{"event-5", "event-4", "event-3"}
	for i, w := range want {
		if recent[i].Message != w {
			t.Errorf("Recent()[%d] = %q; want %q", i, recent[i].Message, w)
		}
	}
}

func TestLogRecentZero(t *testing.T) {
	l := New(3)
	l.Add(Event{Message: "one"})

	if got := l.Recent(0); got != nil {
		t.Errorf("Recent(0) = %v; want nil", got)
	}
}

func TestLogConcurrentAdd(t *testing.T) {
	l := New(16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Add(Event{Message: fmt.Sprintf("worker-%d", n)})
			}
		}(i)
	}
	wg.Wait()

	if l.Len() != 16 {
		t.Errorf("Len() = %d; want 16", l.Len())
	}
}
