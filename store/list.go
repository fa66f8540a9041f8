package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LookupList decodes the JSON array stored under key. found is false when
// the key is absent, in which case the list is empty.
func LookupList[T any](ctx context.Context, s Store, key string) (items []T, found bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	items, err = decodeList[T](raw)
	if err != nil {
		return nil, true, fmt.Errorf("decode %q: %w", key, err)
	}
	return items, true, nil
}

// LoadList is LookupList without the presence flag.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	items, _, err := LookupList[T](ctx, s, key)
	return items, err
}

// SaveList stores items as a JSON array under key. A nil slice is stored as [].
func SaveList[T any](ctx context.Context, s Store, key string, items []T) error {
	raw, err := encodeList(items)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateList decodes the list under key, applies fn and stores the result
// in one serialised step.
func UpdateList[T any](ctx context.Context, s Store, key string, fn func([]T) ([]T, error)) error {
	return s.Update(ctx, key, func(current []byte) ([]byte, error) {
		items := []T{}
		if current != nil {
			var err error
			if items, err = decodeList[T](current); err != nil {
				return nil, fmt.Errorf("decode %q: %w", key, err)
			}
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		return encodeList(next)
	})
}

func decodeList[T any](raw []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
