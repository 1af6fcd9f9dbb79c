package bitvector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/kwertop/bitvec"
	"github.com/redis/go-redis/v9"
)

// maxTxAttempts bounds the optimistic transactions of FlipOne and FlipAll
const maxTxAttempts = 16

// BitVectorRedis is the redis backed implementation of IBitVector.
// size is the number of addressable bits and key the redis key of the
// string holding the packed bytes. The string uses the same layout as
// BitVectorMem, least significant bit first; since redis numbers bits
// most significant first, every single-bit command goes through redisOffset.
// For more details, please refer https://redis.io/docs/data-types/bitmaps/
type BitVectorRedis struct {
	size int
	key  string
}

type redisOptions struct {
	key string
}

// RedisOption configures NewBitVectorRedis
type RedisOption func(*redisOptions)

// WithKey stores the vector at key instead of a generated one.
// An existing value at key is overwritten.
func WithKey(key string) RedisOption {
	return func(o *redisOptions) {
		o.key = key
	}
}

// NewBitVectorRedis creates a BitVectorRedis of size bits initialized
// from initVal, which may be nil.
func NewBitVectorRedis(size int, initVal Init, opts ...RedisOption) (*BitVectorRedis, error) {
	options := redisOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.key == "" {
		options.key = bitvec.GenerateRandomKey()
	}
	buf, err := newBuffer(size, initVal)
	if err != nil {
		return nil, err
	}
	client, err := getClient()
	if err != nil {
		return nil, err
	}
	bitVector := &BitVectorRedis{size: size, key: options.key}
	ctx := context.Background()
	err = client.Set(ctx, bitVector.key, buf, 0).Err()
	if err = bitVector.check(ctx, "set", err); err != nil {
		return nil, err
	}
	return bitVector, nil
}

// FromRedisKey creates a BitVectorRedis of size bits over the data
// already saved at key
func FromRedisKey(key string, size int) (*BitVectorRedis, error) {
	if size < 0 {
		return nil, invalidValue("size must be non-negative, got %d", size)
	}
	client, err := getClient()
	if err != nil {
		return nil, err
	}
	bitVector := &BitVectorRedis{size: size, key: key}
	ctx := context.Background()
	buf, err := client.Get(ctx, key).Bytes()
	if err = bitVector.check(ctx, "get", err); err != nil {
		return nil, err
	}
	if err := validateBuffer(buf, size); err != nil {
		return nil, err
	}
	return bitVector, nil
}

func getClient() (*redis.Client, error) {
	client := bitvec.GetRedisClient()
	if client == nil {
		return nil, fmt.Errorf("bitvec: redis client is not initialized, call bitvec.MakeRedisClient first")
	}
	return client, nil
}

// redisOffset maps a bit index onto the redis bit offset addressing it
func redisOffset(index int) int64 {
	return int64(index&^7 | (7 - index&7))
}

// check logs the outcome of a redis command and wraps its error.
// Successful commands only reach the logger when debug logging is on.
func (bitVector *BitVectorRedis) check(ctx context.Context, op string, err error) error {
	log := bitvec.GetLogger()
	if err == nil {
		if log.Enabled(ctx, slog.LevelDebug) {
			log.WithKey(bitVector.key).LogCommand(ctx, op, nil)
		}
		return nil
	}
	log.WithKey(bitVector.key).LogCommand(ctx, op, err)
	return fmt.Errorf("bitvec: redis %s failed: %w", op, err)
}

// transact runs fn as an optimistic transaction watching the vector's
// key, retrying while another client modifies the key concurrently.
func (bitVector *BitVectorRedis) transact(ctx context.Context, op string, fn func(tx *redis.Tx) error) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = client.Watch(ctx, fn, bitVector.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return bitVector.check(ctx, op, err)
		}
		if log := bitvec.GetLogger(); log.Enabled(ctx, slog.LevelDebug) {
			log.WithKey(bitVector.key).LogRetry(ctx, op, attempt)
		}
	}
	return bitVector.check(ctx, op, err)
}

// Key gives the key at which the vector is saved in redis
func (bitVector *BitVectorRedis) Key() string {
	return bitVector.key
}

func (bitVector *BitVectorRedis) Size() int {
	return bitVector.size
}

func (bitVector *BitVectorRedis) Get(index int) (uint8, error) {
	if err := checkIndex(index, bitVector.size); err != nil {
		return 0, err
	}
	client, err := getClient()
	if err != nil {
		return 0, err
	}
	ctx := context.Background()
	val, err := client.GetBit(ctx, bitVector.key, redisOffset(index)).Result()
	if err = bitVector.check(ctx, "getbit", err); err != nil {
		return 0, err
	}
	return uint8(val), nil
}

func (bitVector *BitVectorRedis) Contains(index int) (bool, error) {
	bit, err := bitVector.Get(index)
	return bit == 1, err
}

func (bitVector *BitVectorRedis) Set(index int, value bool) error {
	if err := checkIndex(index, bitVector.size); err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}
	bit := 0
	if value {
		bit = 1
	}
	ctx := context.Background()
	err = client.SetBit(ctx, bitVector.key, redisOffset(index), bit).Err()
	return bitVector.check(ctx, "setbit", err)
}

// HasMulti checks the bits at the queried indexes in a single pipeline
func (bitVector *BitVectorRedis) HasMulti(indexes []int) ([]bool, error) {
	if len(indexes) == 0 {
		return nil, invalidValue("at least 1 index is required")
	}
	for _, index := range indexes {
		if err := checkIndex(index, bitVector.size); err != nil {
			return nil, err
		}
	}
	client, err := getClient()
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	pipe := client.Pipeline()
	values := make([]*redis.IntCmd, len(indexes))
	for i, index := range indexes {
		values[i] = pipe.GetBit(ctx, bitVector.key, redisOffset(index))
	}
	_, err = pipe.Exec(ctx)
	if err = bitVector.check(ctx, "getbit", err); err != nil {
		return nil, err
	}
	result := make([]bool, len(values))
	for i := range values {
		result[i] = values[i].Val() != 0
	}
	return result, nil
}

// SetMulti sets the bits at indexes in a single transaction. No bit
// changes if any index is invalid.
func (bitVector *BitVectorRedis) SetMulti(indexes []int) error {
	if len(indexes) == 0 {
		return invalidValue("at least 1 index is required")
	}
	for _, index := range indexes {
		if err := checkIndex(index, bitVector.size); err != nil {
			return err
		}
	}
	client, err := getClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, index := range indexes {
			pipe.SetBit(ctx, bitVector.key, redisOffset(index), 1)
		}
		return nil
	})
	return bitVector.check(ctx, "setbit", err)
}

func (bitVector *BitVectorRedis) FlipOne(index int) error {
	index, err := normalizeIndex(index, bitVector.size)
	if err != nil {
		return err
	}
	ctx := context.Background()
	offset := redisOffset(index)
	return bitVector.transact(ctx, "flip_one", func(tx *redis.Tx) error {
		old, err := tx.GetBit(ctx, bitVector.key, offset).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetBit(ctx, bitVector.key, offset, int(1-old))
			return nil
		})
		return err
	})
}

func (bitVector *BitVectorRedis) FlipAll() error {
	ctx := context.Background()
	return bitVector.transact(ctx, "flip_all", func(tx *redis.Tx) error {
		buf, err := bitVector.read(ctx, tx)
		if err != nil {
			return err
		}
		flipAllBytes(buf, bitVector.size)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, bitVector.key, buf, 0)
			return nil
		})
		return err
	})
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// read fetches the packed bytes. A missing key reads as all zeros, the
// way redis treats bitmaps.
func (bitVector *BitVectorRedis) read(ctx context.Context, cmd getter) ([]byte, error) {
	raw, err := cmd.Get(ctx, bitVector.key).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	n := byteLen(bitVector.size)
	if len(raw) > n {
		return nil, invalidData("redis value at %s holds %d bytes, expected %d", bitVector.key, len(raw), n)
	}
	buf := make([]byte, n)
	copy(buf, raw)
	return buf, nil
}

func (bitVector *BitVectorRedis) BitCount() (int, error) {
	client, err := getClient()
	if err != nil {
		return 0, err
	}
	ctx := context.Background()
	bitRange := &redis.BitCount{Start: 0, End: -1}
	val, err := client.BitCount(ctx, bitVector.key, bitRange).Result()
	if err = bitVector.check(ctx, "bitcount", err); err != nil {
		return 0, err
	}
	return int(val), nil
}

func (bitVector *BitVectorRedis) Bytes() ([]byte, error) {
	client, err := getClient()
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	buf, err := bitVector.read(ctx, client)
	if err = bitVector.check(ctx, "get", err); err != nil {
		return nil, err
	}
	return buf, nil
}

func (bitVector *BitVectorRedis) ToInteger() (*big.Int, error) {
	buf, err := bitVector.Bytes()
	if err != nil {
		return nil, err
	}
	return toBigInt(buf), nil
}

func (bitVector *BitVectorRedis) Uint64() (uint64, error) {
	buf, err := bitVector.Bytes()
	if err != nil {
		return 0, err
	}
	return toUint64(buf)
}

func (bitVector *BitVectorRedis) BinaryString() (string, error) {
	buf, err := bitVector.Bytes()
	if err != nil {
		return "", err
	}
	return binaryString(buf, bitVector.size), nil
}

func (bitVector *BitVectorRedis) Fingerprint() (uint64, error) {
	buf, err := bitVector.Bytes()
	if err != nil {
		return 0, err
	}
	return fingerprint(buf, bitVector.size), nil
}

// Equals checks if bitVector and other hold the same bits. other may be
// of any backend.
func (bitVector *BitVectorRedis) Equals(other IBitVector) (bool, error) {
	if other == nil || bitVector.size != other.Size() {
		return false, nil
	}
	aBytes, err := bitVector.Bytes()
	if err != nil {
		return false, err
	}
	bBytes, err := other.Bytes()
	if err != nil {
		return false, err
	}
	return bytes.Equal(aBytes, bBytes), nil
}

// Export returns the json marshalling of the vector saved in redis
func (bitVector *BitVectorRedis) Export() (int, []byte, error) {
	buf, err := bitVector.Bytes()
	if err != nil {
		return 0, nil, err
	}
	data, err := marshal(bitVector.size, buf)
	if err != nil {
		return 0, nil, err
	}
	return bitVector.size, data, nil
}

// Import replaces the value saved in redis with the json produced by Export.
// The exported size must match the size of the vector.
func (bitVector *BitVectorRedis) Import(data []byte) (bool, error) {
	size, buf, err := unmarshal(data)
	if err != nil {
		return false, err
	}
	if size != bitVector.size {
		return false, invalidData("size %d doesn't match vector size %d", size, bitVector.size)
	}
	client, err := getClient()
	if err != nil {
		return false, err
	}
	ctx := context.Background()
	err = client.Set(ctx, bitVector.key, buf, 0).Err()
	if err = bitVector.check(ctx, "set", err); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the vector's value from redis
func (bitVector *BitVectorRedis) Delete() error {
	client, err := getClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	err = client.Del(ctx, bitVector.key).Err()
	return bitVector.check(ctx, "del", err)
}

func (bitVector *BitVectorRedis) String() string {
	buf, err := bitVector.Bytes()
	if err != nil {
		return fmt.Sprintf("Bitset: size=%d, key=%s, error=%v", bitVector.size, bitVector.key, err)
	}
	return formatString(bitVector.size, buf, popCount(buf))
}
