// Package videotrack 实现播放端的观看时长累计。
// 播放器每秒上报一次播放位置，Tracker 在本地累计真实播放时间，
// 每攒满一批才向服务端上报一次，避免逐秒打接口。
package videotrack

import (
	"sync"
)

const (
	// 相邻两次上报位置差超过该值视为拖动，不计入观看时长
	seekThreshold = 2.0
	// 累计满该秒数才触发一次上报
	flushBatchSeconds = 10.0
)

// FlushFunc 把累计的观看秒数和当前播放位置交给上层（通常是调进度接口）
type FlushFunc func(watchedSeconds, currentPosition int) error

// Tracker 单个课时视频的观看时长累计器，并发安全
type Tracker struct {
	mu          sync.Mutex
	flush       FlushFunc
	lastPos     float64
	hasLast     bool
	accumulated float64
}

func NewTracker(flush FlushFunc) *Tracker {
	return &Tracker{flush: flush}
}

// Tick 播放器心跳，position 为当前播放位置（秒）。
// 正向且小于拖动阈值的位置增量计入累计；倒退或大跳跃（拖动）忽略。
// 累计满一批时同步上报，上报失败的批次保留在累计里等下次重试。
func (t *Tracker) Tick(position float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hasLast {
		delta := position - t.lastPos
		if delta > 0 && delta < seekThreshold {
			t.accumulated += delta
		}
	}
	t.lastPos = position
	t.hasLast = true

	if t.accumulated >= flushBatchSeconds {
		return t.flushLocked(position)
	}
	return nil
}

// Flush 播放结束/组件卸载时调用，把不足一批的零头也上报掉
func (t *Tracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.accumulated < 1 {
		return nil
	}
	return t.flushLocked(t.lastPos)
}

// Accumulated 当前未上报的累计秒数，测试和调试用
func (t *Tracker) Accumulated() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accumulated
}

func (t *Tracker) flushLocked(position float64) error {
	seconds := int(t.accumulated)
	if seconds == 0 {
		return nil
	}

	if err := t.flush(seconds, int(position)); err != nil {
		return err
	}
	t.accumulated -= float64(seconds)
	return nil
}
