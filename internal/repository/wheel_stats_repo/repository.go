package wheel_stats_repo

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"reward_wheel/internal/model"
	repoModel "reward_wheel/internal/repository/wheel_stats_repo/model"
)

const (
	// maxDriftLogs Сколько последних отклонений храним на колесо
	maxDriftLogs = 50
)

// StatsRepo Реализация репозитория для хранения статистики колёс
type StatsRepo struct {
	mtx    sync.RWMutex
	states map[int64]*repoModel.WheelState

	windowSize   int
	period       int     // Периодичность проверки (каждые N спинов)
	maxDeviation float64 // Максимально допустимое отклонение доли, процентные пункты
	now          func() time.Time
}

// NewWheelStatsRepository Конструктор репозитория статистики
func NewWheelStatsRepository(windowSize, period int, maxDeviation float64) *StatsRepo {
	return &StatsRepo{
		states:       make(map[int64]*repoModel.WheelState),
		windowSize:   max(windowSize, 1),
		period:       max(period, 1),
		maxDeviation: maxDeviation,
		now:          time.Now,
	}
}

// UpdateState Обновление статистики колеса после спина.
// Если набор сегментов изменился, окно начинается заново
func (r *StatsRepo) UpdateState(wheelID int64, names []string, expected []float64, winner string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.states[wheelID]
	if !ok || !slices.Equal(st.Names, names) || !slices.Equal(st.Expected, expected) {
		st = &repoModel.WheelState{
			Names:      slices.Clone(names),
			Expected:   slices.Clone(expected),
			Window:     make([]int, 0, r.windowSize),
			WindowSize: r.windowSize,
		}
		r.states[wheelID] = st
	}

	// Дубли имён неразличимы, засчитываем первому сегменту с таким именем
	idx := slices.Index(st.Names, winner)
	if idx < 0 {
		log.Warn().Int64("wheel_id", wheelID).Str("winner", winner).Msg("winner is not a segment of the wheel")
		return
	}

	st.TotalSpins++
	st.Window = append(st.Window, idx)
	// Поддерживаем размер окна
	if len(st.Window) > st.WindowSize {
		st.Window = st.Window[1:]
	}
}

// CheckDrift Проверка фактических шансов, выполняется каждые period спинов.
// Возвращает true, если какой-то сегмент отклонился больше допустимого
func (r *StatsRepo) CheckDrift(wheelID int64) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.states[wheelID]
	if !ok || st.TotalSpins == 0 || st.TotalSpins%r.period != 0 {
		return false
	}

	observed := observedShares(st)
	worst, worstDiff := -1, 0.0
	for i := range st.Names {
		diff := math.Abs(observed[i] - st.Expected[i])
		if diff > r.maxDeviation && diff > worstDiff {
			worst, worstDiff = i, diff
		}
	}

	if worst < 0 {
		st.Drifting = false
		return false
	}

	st.Drifting = true
	entry := repoModel.DriftLog{
		Timestamp: r.now(),
		Segment:   st.Names[worst],
		Expected:  st.Expected[worst],
		Observed:  observed[worst],
		Spins:     len(st.Window),
	}
	st.Drifts = append(st.Drifts, entry)
	if len(st.Drifts) > maxDriftLogs {
		st.Drifts = st.Drifts[len(st.Drifts)-maxDriftLogs:]
	}

	log.Warn().
		Int64("wheel_id", wheelID).
		Str("segment", entry.Segment).
		Float64("expected", entry.Expected).
		Float64("observed", entry.Observed).
		Int("window", entry.Spins).
		Msg("wheel odds drift")
	return true
}

// Stats Копия статистики колеса
func (r *StatsRepo) Stats(wheelID int64) model.WheelStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.states[wheelID]
	if !ok {
		return model.WheelStats{WheelID: wheelID, WindowSize: r.windowSize, Segments: []model.SegmentStats{}, Drifts: []model.DriftLog{}}
	}

	observed := observedShares(st)
	wins := make([]int, len(st.Names))
	for _, idx := range st.Window {
		wins[idx]++
	}

	segments := make([]model.SegmentStats, len(st.Names))
	for i, name := range st.Names {
		segments[i] = model.SegmentStats{
			Name:     name,
			Expected: st.Expected[i],
			Observed: observed[i],
			Wins:     wins[i],
		}
	}

	drifts := make([]model.DriftLog, len(st.Drifts))
	for i, d := range st.Drifts {
		drifts[i] = model.DriftLog(d)
	}

	return model.WheelStats{
		WheelID:    wheelID,
		TotalSpins: st.TotalSpins,
		WindowSize: st.WindowSize,
		Segments:   segments,
		Drifting:   st.Drifting,
		Drifts:     drifts,
	}
}

// Reset Забыть статистику колеса
func (r *StatsRepo) Reset(wheelID int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.states, wheelID)
}

// observedShares Доли сегментов в окне, в процентах
func observedShares(st *repoModel.WheelState) []float64 {
	shares := make([]float64, len(st.Names))
	if len(st.Window) == 0 {
		return shares
	}
	for _, idx := range st.Window {
		shares[idx]++
	}
	for i := range shares {
		shares[i] = shares[i] / float64(len(st.Window)) * 100
	}
	return shares
}
