package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type settled struct{}

func TestAfter_Delivers(t *testing.T) {
	s := New(1)
	defer s.Stop()

	task := s.After(5*time.Millisecond, settled{})
	require.NotNil(t, task)
	assert.NotEmpty(t, task.ID())

	select {
	case msg := <-s.C():
		assert.Equal(t, settled{}, msg)
	case <-time.After(time.Second):
		t.Fatal("task never fired")
	}
	assert.Equal(t, 0, s.Pending())
}

func TestCancel_PreventsDelivery(t *testing.T) {
	s := New(1)
	defer s.Stop()

	task := s.After(20*time.Millisecond, settled{})
	assert.Equal(t, 1, s.Pending())
	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel(), "second cancel reports not pending")
	assert.Equal(t, 0, s.Pending())

	select {
	case <-s.C():
		t.Fatal("cancelled task delivered")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestCancel_NilTask(t *testing.T) {
	var task *Task
	assert.False(t, task.Cancel())
}

func TestStop_CancelsOutstanding(t *testing.T) {
	s := New(1)
	s.After(10*time.Millisecond, settled{})
	s.After(time.Hour, settled{})

	s.Stop()
	s.Stop()

	assert.Equal(t, 0, s.Pending())
	assert.Nil(t, s.After(time.Millisecond, settled{}), "no tasks after stop")

	_, ok := s.Next()
	assert.False(t, ok)
}

func TestFire_AfterStopIsNoop(t *testing.T) {
	s := New(1)
	task := s.After(time.Hour, settled{})
	s.Stop()

	// Simulate a timer that slipped past Stop.
	s.fire(task.ID(), settled{})

	select {
	case <-s.C():
		t.Fatal("delivery after stop")
	default:
	}
}

func TestNext_ReturnsFiredMessage(t *testing.T) {
	s := New(1)
	defer s.Stop()

	s.After(time.Millisecond, "hero-fallback")
	msg, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "hero-fallback", msg)
}

func TestFire_BlockedSendReleasedByStop(t *testing.T) {
	s := New(1)
	s.After(time.Millisecond, 1)
	s.After(time.Millisecond, 2)

	// Buffer holds one message; the second firing blocks until Stop.
	time.Sleep(30 * time.Millisecond)
	s.Stop()
}
