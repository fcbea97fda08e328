package triviagen

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// lowCallsWarning — остаток вызовов, при котором пишется предупреждение
const lowCallsWarning = 5

// UsageRecord — персистентное состояние месячного счетчика вызовов
type UsageRecord struct {
	CallsMade int       `json:"calls_made"`
	Limit     int       `json:"limit"`
	LastReset time.Time `json:"last_reset"`
	MonthYear string    `json:"month_year"` // формат "2006-01"
}

// UsageStats — read-only снимок состояния счетчика
type UsageStats struct {
	CallsMade int       `json:"calls_made"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	MonthYear string    `json:"month_year"`
	LastReset time.Time `json:"last_reset"`
}

// UsageStore — инжектируемое хранилище состояния счетчика
type UsageStore interface {
	Load() (*UsageRecord, error)
	Save(record *UsageRecord) error
}

// FileUsageStore хранит UsageRecord в JSON-файле. Запись атомарна:
// временный файл + rename, чтобы параллельный читатель не увидел
// полузаписанное состояние.
type FileUsageStore struct {
	path string
}

// NewFileUsageStore создает файловое хранилище счетчика
func NewFileUsageStore(path string) *FileUsageStore {
	return &FileUsageStore{path: path}
}

// Load читает запись из файла
func (s *FileUsageStore) Load() (*UsageRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var record UsageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("corrupt usage file %s: %w", s.path, err)
	}
	return &record, nil
}

// Save атомарно записывает запись в файл
func (s *FileUsageStore) Save(record *UsageRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// UsageTracker ведет месячный счетчик вызовов основного провайдера.
// Один экземпляр на процесс; все read-modify-write сериализованы мьютексом,
// чтобы параллельные обработчики не теряли инкременты.
type UsageTracker struct {
	mu    sync.Mutex
	store UsageStore
	limit int
	now   func() time.Time
}

// NewUsageTracker создает трекер с заданным месячным лимитом
func NewUsageTracker(store UsageStore, limit int) *UsageTracker {
	return &UsageTracker{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

// loadLocked читает актуальное состояние под уже взятым мьютексом.
// Новый месяц или нечитаемый файл приводят к автоматическому сбросу,
// жесткой ошибки здесь не бывает.
func (t *UsageTracker) loadLocked() *UsageRecord {
	record, err := t.store.Load()
	if err != nil {
		log.Printf("[UsageTracker] состояние счетчика недоступно (%v), сбрасываю", err)
		return t.resetLocked()
	}

	currentMonth := t.now().Format("2006-01")
	if record.MonthYear != currentMonth {
		log.Printf("[UsageTracker] новый месяц %s, сбрасываю счетчик вызовов", currentMonth)
		return t.resetLocked()
	}
	return record
}

// resetLocked обнуляет счетчик для текущего месяца и сохраняет состояние
func (t *UsageTracker) resetLocked() *UsageRecord {
	now := t.now()
	record := &UsageRecord{
		CallsMade: 0,
		Limit:     t.limit,
		LastReset: now,
		MonthYear: now.Format("2006-01"),
	}
	if err := t.store.Save(record); err != nil {
		log.Printf("[UsageTracker] не удалось сохранить сброшенный счетчик: %v", err)
	}
	return record
}

// CanMakeCall сообщает, допустим ли еще один вызов основного провайдера
// в текущем месяце. Сам по себе ничего не списывает.
func (t *UsageTracker) CanMakeCall() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.loadLocked()
	remaining := t.limit - record.CallsMade
	if remaining <= 0 {
		log.Printf("[UsageTracker] месячный лимит исчерпан (%d/%d)", record.CallsMade, t.limit)
		return false
	}
	return true
}

// RecordCall списывает один вызов. Вызывается ровно один раз на каждую
// попытку обращения к основному провайдеру, независимо от исхода вызова:
// неудачные попытки тоже тратят бюджет, иначе циклы ретраев сожгут его молча.
func (t *UsageTracker) RecordCall() {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.loadLocked()
	record.CallsMade++
	if err := t.store.Save(record); err != nil {
		log.Printf("[UsageTracker] не удалось сохранить счетчик: %v", err)
		return
	}

	remaining := t.limit - record.CallsMade
	log.Printf("[UsageTracker] вызов учтен: %d/%d (осталось %d)", record.CallsMade, t.limit, remaining)
	if remaining <= lowCallsWarning {
		log.Printf("[UsageTracker] ВНИМАНИЕ: в этом месяце осталось всего %d вызовов", remaining)
	}
}

// Stats возвращает снимок текущего состояния счетчика
func (t *UsageTracker) Stats() UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := t.loadLocked()
	return UsageStats{
		CallsMade: record.CallsMade,
		Limit:     t.limit,
		Remaining: t.limit - record.CallsMade,
		MonthYear: record.MonthYear,
		LastReset: record.LastReset,
	}
}

// ForceReset немедленно обнуляет счетчик (операторский инструмент и тесты)
func (t *UsageTracker) ForceReset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetLocked()
	log.Printf("[UsageTracker] счетчик сброшен вручную")
}
