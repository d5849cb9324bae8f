package aggregate_week

import (
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// Request пересчёт aggregated_data недели, в которую попадает Date
type Request struct {
	Date time.Time
}

// Response результат пересчёта
type Response struct {
	Week        domain.WeekKey
	SourceWeeks []domain.WeekKey          // бакеты, из которых читались детальные данные
	Days        int                       // сколько дней вошло в профиль
	Records     []domain.AggregatedRecord // пусто, если данных ещё нет
	NoData      bool
}

// Settings параметры недельного профиля
type Settings struct {
	ProfileWeeks int // окно профиля в неделях, >= 1
}
