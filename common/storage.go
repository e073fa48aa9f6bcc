package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetIntOrZero returns an integer stored by the given key or zero when the
// key is unset.
func GetIntOrZero(ctx storage.Context, key interface{}) int {
	raw := storage.Get(ctx, key)
	if raw != nil {
		return raw.(int)
	}

	return 0
}

// AddToInt increases the integer stored by the given key by the delta and
// returns the new value. Missing keys count as zero.
func AddToInt(ctx storage.Context, key interface{}, delta int) int {
	value := GetIntOrZero(ctx, key) + delta
	storage.Put(ctx, key, value)

	return value
}
