package repeat_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/keygrab/internal/repeat"
	"github.com/Alia5/keygrab/keys"
)

func ev(c keys.OsCode, v keys.KeyValue) keys.KeyEvent {
	return keys.KeyEvent{Code: c, Value: v}
}

func TestTrackerApply(t *testing.T) {
	tests := []struct {
		name string
		in   []keys.KeyEvent
		want []keys.KeyEvent
	}{
		{
			name: "held key repeats until released",
			in: []keys.KeyEvent{
				ev(keys.KeyA, keys.Press), ev(keys.KeyA, keys.Press),
				ev(keys.KeyA, keys.Release), ev(keys.KeyA, keys.Press),
			},
			want: []keys.KeyEvent{
				ev(keys.KeyA, keys.Press), ev(keys.KeyA, keys.Repeat),
				ev(keys.KeyA, keys.Release), ev(keys.KeyA, keys.Press),
			},
		},
		{
			name: "codes are independent",
			in: []keys.KeyEvent{
				ev(keys.KeyA, keys.Press), ev(keys.KeyB, keys.Press), ev(keys.KeyA, keys.Press),
			},
			want: []keys.KeyEvent{
				ev(keys.KeyA, keys.Press), ev(keys.KeyB, keys.Press), ev(keys.KeyA, keys.Repeat),
			},
		},
		{
			name: "release of unheld key",
			in:   []keys.KeyEvent{ev(keys.KeyC, keys.Release), ev(keys.KeyC, keys.Press)},
			want: []keys.KeyEvent{ev(keys.KeyC, keys.Release), ev(keys.KeyC, keys.Press)},
		},
		{
			name: "incoming repeat passes untouched",
			in:   []keys.KeyEvent{ev(keys.KeyD, keys.Repeat), ev(keys.KeyD, keys.Press)},
			want: []keys.KeyEvent{ev(keys.KeyD, keys.Repeat), ev(keys.KeyD, keys.Press)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := repeat.New()
			got := make([]keys.KeyEvent, 0, len(tt.in))
			for _, e := range tt.in {
				got = append(got, tr.Apply(e))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrackerHeldAndReset(t *testing.T) {
	tr := repeat.New()
	tr.Apply(ev(keys.KeyB, keys.Press))
	tr.Apply(ev(keys.KeyA, keys.Press))
	tr.Apply(ev(keys.KeyA, keys.Press))
	assert.Equal(t, []keys.OsCode{keys.KeyA, keys.KeyB}, tr.Held())
	assert.True(t, tr.Holds(keys.KeyA))
	assert.False(t, tr.Holds(keys.KeyC))

	tr.Apply(ev(keys.KeyB, keys.Release))
	assert.False(t, tr.Holds(keys.KeyB))

	tr.Reset()
	assert.Empty(t, tr.Held())
	assert.Equal(t, keys.Press, tr.Apply(ev(keys.KeyA, keys.Press)).Value)
}

func TestTrackerConcurrent(t *testing.T) {
	tr := repeat.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				tr.Apply(ev(keys.KeyA, keys.Press))
				tr.Apply(ev(keys.KeyA, keys.Release))
			}
		}()
	}
	wg.Wait()
	assert.Empty(t, tr.Held())
}
