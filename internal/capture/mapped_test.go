package capture_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/keygrab/internal/capture"
	"github.com/Alia5/keygrab/keys"
)

func TestMappedKeys(t *testing.T) {
	m := capture.NewMappedKeys(keys.KeyB, keys.KeyA, keys.KeyA)
	assert.True(t, m.Contains(keys.KeyA))
	assert.False(t, m.Contains(keys.KeyC))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []keys.OsCode{keys.KeyA, keys.KeyB}, m.Codes())

	m.Replace([]keys.OsCode{keys.KeyC})
	assert.False(t, m.Contains(keys.KeyA))
	assert.True(t, m.Contains(keys.KeyC))
}

func TestMappedKeysConcurrentReplace(t *testing.T) {
	setA := []keys.OsCode{keys.KeyA, keys.KeyB}
	setB := []keys.OsCode{keys.KeyC, keys.KeyD}
	m := capture.NewMappedKeys(setA...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 500 {
			if i%2 == 0 {
				m.Replace(setB)
			} else {
				m.Replace(setA)
			}
		}
	}()
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				codes := m.Codes()
				assert.True(t, len(codes) == 2 &&
					(codes[0] == keys.KeyA && codes[1] == keys.KeyB ||
						codes[0] == keys.KeyC && codes[1] == keys.KeyD), "torn set %v", codes)
			}
		}()
	}
	wg.Wait()
}

func TestWatchdog(t *testing.T) {
	fired := 0
	w := capture.NewWatchdog(func() { fired++ })
	ev := func(c keys.OsCode, v keys.KeyValue) keys.KeyEvent { return keys.KeyEvent{Code: c, Value: v} }

	assert.False(t, w.Check(ev(keys.KeyLeftCtrl, keys.Press)))
	assert.False(t, w.Check(ev(keys.KeyEsc, keys.Press)))
	assert.False(t, w.Check(ev(keys.KeyEsc, keys.Release)))
	assert.False(t, w.Check(ev(keys.KeySpace, keys.Press)))
	assert.False(t, w.Check(ev(keys.KeyA, keys.Press)))
	assert.Zero(t, fired)

	assert.True(t, w.Check(ev(keys.KeyEsc, keys.Press)))
	assert.Equal(t, 1, fired)

	// Repeat values do not change the tracked state.
	assert.False(t, w.Check(ev(keys.KeySpace, keys.Repeat)))
}
