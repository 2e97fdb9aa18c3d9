package shard

import (
	"testing"
	"time"

	"mkt-settle-api/internal/config"
)

func TestCRC32ShardStrategy(t *testing.T) {
	strategy := NewCRC32Strategy(4)
	commissionID := uint64(123456789)
	shard := strategy.GetShard(commissionID)
	if shard < 0 || shard >= 4 {
		t.Errorf("Shard out of range: %d", shard)
	}
}

func TestCRC32ShardStrategy_Stable(t *testing.T) {
	strategy := NewCRC32Strategy(8)
	id := uint64(987654321)
	first := strategy.GetShard(id)
	for i := 0; i < 100; i++ {
		if got := strategy.GetShard(id); got != first {
			t.Fatalf("Shard not stable: first=%d got=%d", first, got)
		}
	}
}

func TestShardEngine_GetTable(t *testing.T) {
	engine := NewShardEngine("p_commission", 4)
	commissionID := uint64(987654321)
	timestamp := time.Date(2025, 9, 12, 12, 0, 0, 0, time.Local)
	table := engine.GetTable(commissionID, timestamp)

	expectedPrefix := "p_commission_202509_p"
	if len(table) < len(expectedPrefix) || table[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Unexpected table name: %s", table)
	}
}

func TestTablesInRange(t *testing.T) {
	config.C.Ledger.ShardsPerMonth = 2
	from := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	tables := TablesInRange("p_commission", from, to)
	if len(tables) != 4 {
		t.Fatalf("Expected 4 tables over two months, got %d: %v", len(tables), tables)
	}
	if tables[0] != "p_commission_202508_p0" {
		t.Errorf("Unexpected first table: %s", tables[0])
	}
	if tables[3] != "p_commission_202509_p1" {
		t.Errorf("Unexpected last table: %s", tables[3])
	}
}

func TestIndexTable(t *testing.T) {
	ts := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	if got := IndexTable(ts); got != "p_commission_index_202601" {
		t.Errorf("Unexpected index table: %s", got)
	}
}
