package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/dao"
	"mkt-settle-api/internal/dto"
	"mkt-settle-api/internal/event"
	mainmodel "mkt-settle-api/internal/model/main"
	"mkt-settle-api/internal/rate"
	rediskey "mkt-settle-api/internal/types/redis-key"
)

const scheduleCacheTTL = 5 * time.Minute

type ScheduleService struct {
	scheduleDao *dao.ScheduleDao
	supplierDao *dao.SupplierDao
	group       singleflight.Group
}

func NewScheduleService() *ScheduleService {
	return &ScheduleService{
		scheduleDao: dao.NewScheduleDao(),
		supplierDao: dao.NewSupplierDao(),
	}
}

// ================== 读路径 ==================

// Current 当前生效的费率表，redis 缓存 + singleflight 防击穿
func (s *ScheduleService) Current(ctx context.Context) (*rate.Schedule, error) {
	if raw, err := dal.RedisClient.Get(ctx, rediskey.RateScheduleKey).Result(); err == nil && raw != "" {
		var m mainmodel.RateScheduleM
		if err := json.Unmarshal([]byte(raw), &m); err == nil && m.Version > 0 {
			return scheduleFromModel(&m), nil
		}
	}

	v, err, _ := s.group.Do("schedule:current", func() (interface{}, error) {
		m, err := s.scheduleDao.GetCurrent()
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, ErrScheduleNotFound
		}
		if b, mErr := json.Marshal(m); mErr == nil {
			dal.RedisClient.Set(ctx, rediskey.RateScheduleKey, b, scheduleCacheTTL)
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return scheduleFromModel(v.(*mainmodel.RateScheduleM)), nil
}

// Get 费率表视图，version 为 0 时取当前版本
func (s *ScheduleService) Get(ctx context.Context, version uint64) (*dto.ScheduleVO, error) {
	if version == 0 {
		cur, err := s.Current(ctx)
		if err != nil {
			return nil, err
		}
		return scheduleVO(cur), nil
	}

	m, err := s.scheduleDao.GetByVersion(version)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: version %d", ErrScheduleNotFound, version)
	}
	return scheduleVO(scheduleFromModel(m)), nil
}

// Resolve 解析供应商当前生效费率及命中层级
func (s *ScheduleService) Resolve(ctx context.Context, req dto.ResolveRateReq) (*dto.ResolveRateResp, error) {
	sup, err := s.supplierDao.GetByID(req.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil || sup.Status != 1 {
		return nil, fmt.Errorf("%w: supplier %d", ErrSupplierNotFound, req.SupplierID)
	}

	sched, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	categoryID := req.CategoryID
	if categoryID == 0 {
		categoryID = sup.CategoryID
	}
	p, source := rate.Resolve(sched, req.SupplierID, sup.Tier, categoryID)

	return &dto.ResolveRateResp{
		SupplierID:      req.SupplierID,
		Tier:            sup.Tier,
		Rate:            p.String(),
		Source:          source,
		ScheduleVersion: sched.Version,
	}, nil
}

// History 变更流水
func (s *ScheduleService) History(req dto.ScheduleHistoryReq) ([]dto.ScheduleLogVO, int64, error) {
	req.Normalize()
	logs, total, err := s.scheduleDao.History(req.Version, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.ScheduleLogVO, 0, len(logs))
	for _, l := range logs {
		vo := dto.ScheduleLogVO{
			ID:         l.ID,
			Version:    l.Version,
			Field:      l.Field,
			EntityKey:  l.EntityKey,
			Actor:      l.Actor,
			Reason:     l.Reason,
			CreateTime: l.CreateTime,
		}
		if l.PrevValue != nil {
			vo.PrevValue = l.PrevValue.String()
		}
		if l.NewValue != nil {
			vo.NewValue = l.NewValue.String()
		}
		out = append(out, vo)
	}
	return out, total, nil
}

// ================== 写路径（均产生新版本） ==================

func (s *ScheduleService) SetCategoryRate(ctx context.Context, req dto.SetCategoryRateReq) (*dto.ScheduleMutationResp, error) {
	p, err := parsePercent(req.Rate)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, req.BaseVersion, req.Operator, req.Reason, "category", strconv.FormatUint(req.CategoryID, 10),
		func(base *rate.Schedule) (*rate.Schedule, error) {
			return base.WithCategoryRate(req.CategoryID, p)
		})
}

func (s *ScheduleService) RemoveCategoryRate(ctx context.Context, req dto.RemoveCategoryRateReq) (*dto.ScheduleMutationResp, error) {
	return s.mutate(ctx, req.BaseVersion, req.Operator, req.Reason, "category", strconv.FormatUint(req.CategoryID, 10),
		func(base *rate.Schedule) (*rate.Schedule, error) {
			return base.WithoutCategoryRate(req.CategoryID)
		})
}

func (s *ScheduleService) SetSupplierOverride(ctx context.Context, req dto.SetSupplierOverrideReq) (*dto.ScheduleMutationResp, error) {
	p, err := parsePercent(req.Rate)
	if err != nil {
		return nil, err
	}
	sup, err := s.supplierDao.GetByID(req.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, fmt.Errorf("%w: supplier %d", ErrSupplierNotFound, req.SupplierID)
	}
	return s.mutate(ctx, req.BaseVersion, req.Operator, req.Reason, "supplier", strconv.FormatUint(req.SupplierID, 10),
		func(base *rate.Schedule) (*rate.Schedule, error) {
			return base.WithSupplierOverride(req.SupplierID, p)
		})
}

func (s *ScheduleService) RemoveSupplierOverride(ctx context.Context, req dto.RemoveSupplierOverrideReq) (*dto.ScheduleMutationResp, error) {
	return s.mutate(ctx, req.BaseVersion, req.Operator, req.Reason, "supplier", strconv.FormatUint(req.SupplierID, 10),
		func(base *rate.Schedule) (*rate.Schedule, error) {
			return base.WithoutSupplierOverride(req.SupplierID)
		})
}

// UpdateTierRates 默认费率与四个等级费率整体替换，缺任何一个等级都拒绝
func (s *ScheduleService) UpdateTierRates(ctx context.Context, req dto.UpdateTierRatesReq) (*dto.ScheduleMutationResp, error) {
	defaultRate, err := parsePercent(req.DefaultRate)
	if err != nil {
		return nil, err
	}
	tiers := make(map[string]decimal.Decimal, len(req.TierRates))
	for tier, raw := range req.TierRates {
		p, pErr := parsePercent(raw)
		if pErr != nil {
			return nil, fmt.Errorf("tier %s: %w", tier, pErr)
		}
		tiers[tier] = p
	}
	for _, tier := range rate.KnownTiers {
		if _, ok := tiers[tier]; !ok {
			return nil, fmt.Errorf("%w: tier %s missing", rate.ErrInvalidRate, tier)
		}
	}

	return s.mutate(ctx, req.BaseVersion, req.Operator, req.Reason, "tier", "",
		func(base *rate.Schedule) (*rate.Schedule, error) {
			return base.WithTierRates(defaultRate, tiers)
		})
}

// mutate 费率表写路径的公共骨架
func (s *ScheduleService) mutate(
	ctx context.Context,
	baseVersion uint64,
	operator, reason, field, entityKey string,
	apply func(base *rate.Schedule) (*rate.Schedule, error),
) (*dto.ScheduleMutationResp, error) {
	// 1. 以库内最新版本为基准（不走缓存）
	curM, err := s.scheduleDao.GetCurrent()
	if err != nil {
		return nil, err
	}
	if curM == nil {
		return nil, ErrScheduleNotFound
	}
	base := scheduleFromModel(curM)
	if base.Version != baseVersion {
		return nil, fmt.Errorf("%w: base version %d superseded by %d", rate.ErrStaleSchedule, baseVersion, base.Version)
	}

	// 2. 在快照上应用变更，得到下一版本
	next, err := apply(base)
	if err != nil {
		return nil, err
	}
	next.Version = base.Version + 1
	next.EffectiveFrom = time.Now().UTC()
	next.ChangedBy = operator
	next.ChangeReason = reason

	// 3. 追加写入，事务内复核版本
	m := modelFromSchedule(next)
	if err := s.scheduleDao.AppendVersion(baseVersion, m, diffLogs(base, next, operator, reason)); err != nil {
		return nil, err
	}

	// 4. 失效缓存并广播
	if err := dal.RedisClient.Del(ctx, rediskey.RateScheduleKey).Err(); err != nil {
		log.Printf("[SCHEDULE] 缓存失效失败: %v", err)
	}
	event.PublishScheduleChanged(&dto.ScheduleChangedEvent{
		Version:   next.Version,
		Field:     field,
		EntityKey: entityKey,
		Operator:  operator,
		ChangedAt: time.Now().UnixMilli(),
	})

	return &dto.ScheduleMutationResp{Version: m.Version, EffectiveFrom: m.EffectiveFrom}, nil
}

// parsePercent 解析百分比并校验 [0,100]
func parsePercent(raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", rate.ErrInvalidRate, raw)
	}
	if !rate.ValidPercent(p) {
		return decimal.Zero, fmt.Errorf("%w: %s", rate.ErrInvalidRate, p)
	}
	return p, nil
}

// diffLogs 两个版本间的逐项差异，顺序确定
func diffLogs(base, next *rate.Schedule, actor, reason string) []mainmodel.RateScheduleLog {
	var logs []mainmodel.RateScheduleLog
	add := func(field, key string, prev, nw *decimal.Decimal) {
		logs = append(logs, mainmodel.RateScheduleLog{
			Field:     field,
			EntityKey: key,
			PrevValue: prev,
			NewValue:  nw,
			Actor:     actor,
			Reason:    reason,
		})
	}

	if !base.DefaultRate.Equal(next.DefaultRate) {
		p, n := base.DefaultRate, next.DefaultRate
		add("default", "", &p, &n)
	}

	for _, tier := range rate.KnownTiers {
		b, bok := base.TierRates[tier]
		n, nok := next.TierRates[tier]
		switch {
		case bok && nok && !b.Equal(n):
			bb, nn := b, n
			add("tier", tier, &bb, &nn)
		case !bok && nok:
			nn := n
			add("tier", tier, nil, &nn)
		case bok && !nok:
			bb := b
			add("tier", tier, &bb, nil)
		}
	}

	logs = append(logs, diffIDMap("category", base.CategoryRates, next.CategoryRates, actor, reason)...)
	logs = append(logs, diffIDMap("supplier", base.SupplierOverrides, next.SupplierOverrides, actor, reason)...)
	return logs
}

func diffIDMap(field string, base, next map[uint64]decimal.Decimal, actor, reason string) []mainmodel.RateScheduleLog {
	ids := make([]uint64, 0, len(base)+len(next))
	seen := make(map[uint64]bool, len(base)+len(next))
	for id := range base {
		ids = append(ids, id)
		seen[id] = true
	}
	for id := range next {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var logs []mainmodel.RateScheduleLog
	for _, id := range ids {
		b, bok := base[id]
		n, nok := next[id]
		entry := mainmodel.RateScheduleLog{
			Field:     field,
			EntityKey: strconv.FormatUint(id, 10),
			Actor:     actor,
			Reason:    reason,
		}
		switch {
		case bok && nok && !b.Equal(n):
			bb, nn := b, n
			entry.PrevValue, entry.NewValue = &bb, &nn
		case !bok && nok:
			nn := n
			entry.NewValue = &nn
		case bok && !nok:
			bb := b
			entry.PrevValue = &bb
		default:
			continue
		}
		logs = append(logs, entry)
	}
	return logs
}

// ================== model <-> domain ==================

func scheduleFromModel(m *mainmodel.RateScheduleM) *rate.Schedule {
	s := &rate.Schedule{
		Version:           m.Version,
		DefaultRate:       m.DefaultRate,
		TierRates:         make(map[string]decimal.Decimal, len(m.TierRates)),
		CategoryRates:     make(map[uint64]decimal.Decimal, len(m.CategoryRates)),
		SupplierOverrides: make(map[uint64]decimal.Decimal, len(m.SupplierOverrides)),
		EffectiveFrom:     m.EffectiveFrom,
		ChangedBy:         m.ChangedBy,
		ChangeReason:      m.ChangeReason,
	}
	for k, v := range m.TierRates {
		s.TierRates[k] = v
	}
	for k, v := range m.CategoryRates {
		s.CategoryRates[k] = v
	}
	for k, v := range m.SupplierOverrides {
		s.SupplierOverrides[k] = v
	}
	return s
}

func modelFromSchedule(s *rate.Schedule) *mainmodel.RateScheduleM {
	m := &mainmodel.RateScheduleM{
		Version:           s.Version,
		DefaultRate:       s.DefaultRate,
		TierRates:         mainmodel.TierRateMap{},
		CategoryRates:     mainmodel.IDRateMap{},
		SupplierOverrides: mainmodel.IDRateMap{},
		EffectiveFrom:     s.EffectiveFrom,
		ChangedBy:         s.ChangedBy,
		ChangeReason:      s.ChangeReason,
	}
	for k, v := range s.TierRates {
		m.TierRates[k] = v
	}
	for k, v := range s.CategoryRates {
		m.CategoryRates[k] = v
	}
	for k, v := range s.SupplierOverrides {
		m.SupplierOverrides[k] = v
	}
	return m
}

func scheduleVO(s *rate.Schedule) *dto.ScheduleVO {
	vo := &dto.ScheduleVO{
		Version:           s.Version,
		DefaultRate:       s.DefaultRate.String(),
		TierRates:         make(map[string]string, len(s.TierRates)),
		CategoryRates:     make(map[string]string, len(s.CategoryRates)),
		SupplierOverrides: make(map[string]string, len(s.SupplierOverrides)),
		EffectiveFrom:     s.EffectiveFrom,
		ChangedBy:         s.ChangedBy,
		ChangeReason:      s.ChangeReason,
	}
	for k, v := range s.TierRates {
		vo.TierRates[k] = v.String()
	}
	for k, v := range s.CategoryRates {
		vo.CategoryRates[strconv.FormatUint(k, 10)] = v.String()
	}
	for k, v := range s.SupplierOverrides {
		vo.SupplierOverrides[strconv.FormatUint(k, 10)] = v.String()
	}
	return vo
}
