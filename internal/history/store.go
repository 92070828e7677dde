package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"rental_engine/internal/model"
)

// Store 定义租车历史存储接口
type Store interface {
	// ForUser 获取指定用户的全部租车记录，按写入顺序返回
	ForUser(userID string) ([]model.RentalRecord, error)
	// Append 追加一条租车记录
	Append(record model.RentalRecord) error
	// Cleanup 删除早于指定天数的记录
	Cleanup(days int) error
}

// FileStore 基于 JSONL 文件的历史存储实现
type FileStore struct {
	filePath string
	mu       sync.RWMutex
	records  []model.RentalRecord // 内存缓存，用于快速查询
}

// NewFileStore 创建一个新的 FileStore
// 如果文件不存在，会自动创建
func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		filePath: filePath,
		records:  make([]model.RentalRecord, 0),
	}

	if err := fs.load(); err != nil {
		return nil, err
	}

	return fs, nil
}

// load 从文件加载所有历史记录到内存
func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.RentalRecord
		if err := json.Unmarshal(line, &record); err != nil {
			// 忽略损坏的行
			continue
		}
		s.records = append(s.records, record)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan history file: %w", err)
	}

	return nil
}

// ForUser 获取指定用户的全部租车记录
// 打分逻辑只做与顺序无关的聚合，但这里仍保持写入顺序返回
func (s *FileStore) ForUser(userID string) ([]model.RentalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.RentalRecord
	// 全量扫描对目前的数据量足够；
	// 数据量大时可以换成 map[userID][]RentalRecord 的索引结构
	for _, r := range s.records {
		if r.UserID == userID {
			result = append(result, r)
		}
	}

	return result, nil
}

// Append 追加一条租车记录到文件和内存
func (s *FileStore) Append(record model.RentalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.Timestamp == 0 {
		record.Timestamp = time.Now().Unix()
	}

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file for appending: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}

	s.records = append(s.records, record)
	return nil
}

// Cleanup 删除早于 days 天的记录，并重写持久化文件
func (s *FileStore) Cleanup(days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Unix() - int64(days)*24*60*60

	kept := make([]model.RentalRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.Timestamp >= cutoff {
			kept = append(kept, r)
		}
	}

	if len(kept) == len(s.records) {
		return nil
	}

	// 先写临时文件再原子替换，避免清理中途崩溃丢数据
	tmpPath := s.filePath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}

	encoder := json.NewEncoder(f)
	for _, r := range kept {
		if err := encoder.Encode(r); err != nil {
			f.Close()
			return fmt.Errorf("failed to write history record: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	s.records = kept
	return nil
}
