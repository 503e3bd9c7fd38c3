package service

import "sync"

// Registry 管理目前存活的所有 Session。
// register/unregister 可能被多條連線的處理器並發呼叫，用讀寫鎖保護。
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Register 將 Session 加入存活集合
func (r *Registry) Register(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

// Unregister 將 Session 移出存活集合。
// 回傳後不會再有任何廣播送達該 Session。
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// ForEach 對每個存活 Session 呼叫 fn，期間持有讀鎖
func (r *Registry) ForEach(fn func(*Session)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, session := range r.sessions {
		fn(session)
	}
}

// Count 回傳目前存活的 Session 數量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
