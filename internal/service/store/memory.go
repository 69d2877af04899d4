package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/snehapuri/formula-builder/internal/model"
)

// TableStore 当前数据集（进程内唯一，整体替换）
type TableStore struct {
	current *model.UploadedTable
	mu      sync.RWMutex
}

// NewTableStore 创建数据集存储
func NewTableStore() *TableStore {
	return &TableStore{current: model.EmptyTable()}
}

// Current 获取当前数据集（调用方只读）
func (s *TableStore) Current() *model.UploadedTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace 用新数据集整体替换当前数据集
func (s *TableStore) Replace(table *model.UploadedTable) {
	if table == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = table
}

// FormulaStore 公式注册表
type FormulaStore struct {
	formulas map[string]*model.Formula
	order    []string
	nextID   int
	now      func() time.Time
	mu       sync.RWMutex
}

// NewFormulaStore 创建公式注册表
func NewFormulaStore() *FormulaStore {
	return &FormulaStore{
		formulas: make(map[string]*model.Formula),
		nextID:   1,
		now:      time.Now,
	}
}

// Create 新建公式，编号在锁内单调分配，不复用
func (s *FormulaStore) Create(name, description, formulaString string) model.Formula {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	f := &model.Formula{
		ID:            id,
		Name:          name,
		Description:   description,
		FormulaString: formulaString,
		CreatedAt:     s.now().Format(time.RFC3339Nano),
	}
	s.formulas[id] = f
	s.order = append(s.order, id)
	return *f
}

// Get 获取公式
func (s *FormulaStore) Get(id string) (model.Formula, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.formulas[id]
	if !ok {
		return model.Formula{}, false
	}
	return *f, true
}

// List 按创建顺序返回全部公式
func (s *FormulaStore) List() []model.Formula {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Formula, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.formulas[id])
	}
	return result
}

// HistoryStore 计算历史（只追加）
type HistoryStore struct {
	records []model.CalculationRecord
	mu      sync.RWMutex
}

// NewHistoryStore 创建历史存储
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{records: []model.CalculationRecord{}}
}

// Append 追加一条记录
func (s *HistoryStore) Append(r model.CalculationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// Between 返回时间区间内记录的副本；零值表示不限
func (s *HistoryStore) Between(start, end time.Time) []model.CalculationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CalculationRecord, 0, len(s.records))
	for _, r := range s.records {
		if !start.IsZero() && r.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && r.Timestamp.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Count 记录数量
func (s *HistoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
