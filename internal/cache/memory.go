package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory хранилище в памяти процесса, используется когда Redis не настроен.
// Истёкшие записи удаляются фоновой очисткой ttlcache.
type Memory struct {
	items     *ttlcache.Cache[string, []byte]
	closeOnce sync.Once
}

func NewMemory() *Memory {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &Memory{items: items}
}

func (m *Memory) Get(_ context.Context, key string, result any) (bool, error) {
	const op = "cache.Memory.Get"
	item := m.items.Get(key)
	if item == nil {
		return false, nil
	}
	if err := json.Unmarshal(item.Value(), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет value в JSON. Нулевой expiration означает хранение без срока.
func (m *Memory) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Memory.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ttl := expiration
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	m.items.Set(key, data, ttl)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Len число записей, ещё не удалённых очисткой.
func (m *Memory) Len() int {
	return m.items.Len()
}

// Close останавливает фоновую очистку.
func (m *Memory) Close() error {
	m.closeOnce.Do(m.items.Stop)
	return nil
}
