package model

import "time"

// Состояние колеса для мониторинга шансов
type WheelState struct {
	TotalSpins int // Сколько всего спинов сделано

	Names    []string  // Имена сегментов в порядке колеса
	Expected []float64 // Ожидаемые доли сегментов, в процентах

	Window     []int // Индексы выигравших сегментов в окне последних спинов
	WindowSize int   // Размер окна для анализа

	Drifting bool       // Последняя проверка нашла отклонение
	Drifts   []DriftLog // Лог отклонений
}

// Лог отклонения фактической доли сегмента от ожидаемой
type DriftLog struct {
	Timestamp time.Time
	Segment   string
	Expected  float64
	Observed  float64
	Spins     int
}
