package shard

import (
	"fmt"
	"hash/crc32"
)

// CRC32ShardStrategy 使用 CRC32 哈希进行分片
type CRC32ShardStrategy struct {
	ShardCount uint32
}

func NewCRC32Strategy(count uint32) *CRC32ShardStrategy {
	return &CRC32ShardStrategy{ShardCount: count}
}

func (s *CRC32ShardStrategy) GetShard(id uint64) int {
	hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%d", id)))
	return int(hash % s.ShardCount)
}

// ModShardStrategy 使用取模进行分片，迁移旧表时使用
type ModShardStrategy struct {
	ShardCount uint32
}

func NewModStrategy(count uint32) *ModShardStrategy {
	return &ModShardStrategy{ShardCount: count}
}

func (s *ModShardStrategy) GetShard(id uint64) int {
	return int(id % uint64(s.ShardCount))
}
